package comparator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var idempotencyInputs = []string{
	"",
	"West of House",
	"West of House\nYou are standing in an open field west of a white house,\nwith a boarded front door.",
	"ZORK I: The Great Underground Empire\nCopyright (c) 1981 Infocom, Inc.\n\nWest of House",
	"Forest Path                        Score: 5        Moves: 12\nForest Path\nThis is a path winding through a dimly lit forest.",
	"You hear in the distance the chirping of a song bird.\nTaken.",
	"There is no lamp here.",
	"You can't see any jewel-encrusted golden egg\nhere!",
	"line one\r\nline two\r\nline three",
	"a\n\n\n\n\nb",
	"> open mailbox\nOpening the small mailbox reveals a leaflet.",
}

func TestNormalize_Idempotent(t *testing.T) {
	profiles := map[string]Options{
		"default": DefaultOptions(),
		"strict": func() Options {
			o := DefaultOptions()
			o.StrictContentOnly = true
			o.IgnoreCaseInMessages = true
			return o
		}(),
		"minimal": {ToleranceThreshold: 0.95},
	}

	for name, opts := range profiles {
		n := NewNormalizer(opts)
		for _, in := range idempotencyInputs {
			once := n.Normalize(in)
			twice := n.Normalize(once)
			assert.Equal(t, once, twice, "profile %s, input %q", name, in)
		}
	}
}

func TestNormalize_StripsHeaderOnlyAtTop(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	out := n.Normalize("ZORK I: The Great Underground Empire\nWest of House")
	assert.Equal(t, "West of House", out)

	// Header-like text mid-output is content, not boilerplate.
	out = n.Normalize("The engraving reads:\nZORK I: The Great Underground Empire")
	assert.Contains(t, out, "ZORK I")
}

func TestNormalize_StatusBar(t *testing.T) {
	n := NewNormalizer(DefaultOptions())
	out := n.Normalize("Kitchen                        Score: 10        Moves: 4\nKitchen\nYou are in the kitchen of the white house.")
	assert.Equal(t, "Kitchen\nYou are in the kitchen of the white house.", out)
}

func TestNormalize_LineWrapRejoin(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	wrapped := "You are standing in an open field west of a white house,\nwith a boarded front door."
	assert.Equal(t,
		"You are standing in an open field west of a white house, with a boarded front door.",
		n.Normalize(wrapped))

	// Paragraph breaks are never crossed.
	paragraphs := "This is the first paragraph and it is quite long indeed\n\nThis is the second paragraph."
	out := n.Normalize(paragraphs)
	assert.Contains(t, out, "\n\n")

	// Short lines (room titles) are left alone.
	assert.Equal(t, "West of House\nThere is a small mailbox here.",
		n.Normalize("West of House\nThere is a small mailbox here."))
}

func TestNormalize_ErrorCanonicalization(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	variants := []string{
		"You can't see any lamp here!",
		"There is no lamp here.",
		"You don't see that here.",
	}
	for _, v := range variants {
		assert.Equal(t, "[object-not-visible]", n.Normalize(v), "input %q", v)
	}

	assert.Equal(t, "[invalid-direction]", n.Normalize("You can't go that way."))
	assert.Equal(t, "[parse-error]", n.Normalize(`I don't know the word "frotz".`))
	assert.Equal(t, "[not-carrying]", n.Normalize("You're not carrying that."))
}

func TestNormalize_HardWrappedErrorCanonicalized(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	// An interpreter that hard-wraps a long error message must land on the
	// same token as one that emits it on a single line.
	wrapped := "You can't see any jewel-encrusted golden egg\nhere!"
	flat := "You can't see any jewel-encrusted golden egg here!"

	assert.Equal(t, "[object-not-visible]", n.Normalize(wrapped))
	assert.Equal(t, n.Normalize(flat), n.Normalize(wrapped))
}

func TestNormalize_DisabledFiltersKeepContent(t *testing.T) {
	opts := Options{NormalizeWhitespace: true, ToleranceThreshold: 0.95}
	n := NewNormalizer(opts)

	out := n.Normalize("ZORK I: The Great Underground Empire\nYou can't go that way.")
	assert.Contains(t, out, "ZORK I")
	assert.Contains(t, out, "You can't go that way.")
}

func TestNormalize_StrictContentOnlyDropsPrompts(t *testing.T) {
	opts := DefaultOptions()
	opts.StrictContentOnly = true
	n := NewNormalizer(opts)

	out := n.Normalize("> open mailbox\nOpening the small mailbox reveals a leaflet.\n>")
	assert.Equal(t, "Opening the small mailbox reveals a leaflet.", out)
}

func TestNormalize_IgnoreCase(t *testing.T) {
	opts := DefaultOptions()
	opts.IgnoreCaseInMessages = true
	n := NewNormalizer(opts)

	assert.Equal(t, n.Normalize("TAKEN."), n.Normalize("taken."))
}
