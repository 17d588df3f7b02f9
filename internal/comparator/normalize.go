package comparator

import (
	"regexp"
	"strings"
)

// Recognized game-identification boilerplate. These only ever appear at the
// top of the initial output, so stripping is restricted to leading lines.
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^ZORK I+:`),
	regexp.MustCompile(`(?i)^ZORK is a registered trademark`),
	regexp.MustCompile(`(?i)^Copyright \(c\)`),
	regexp.MustCompile(`(?i)^Infocom`),
	regexp.MustCompile(`(?i)^Revision \d+ / Serial number \d+`),
	regexp.MustCompile(`(?i)^Release \d+ / Serial number \d+`),
	regexp.MustCompile(`(?i)^All rights reserved\.?$`),
	regexp.MustCompile(`(?i)^Licensed to:`),
}

// Status line as drawn by the interpreter: location, then Score/Moves columns.
var statusBarPattern = regexp.MustCompile(`^\s*\S.*\s+Score:\s*-?\d+\s+Moves:\s*\d+\s*$`)

// Non-deterministic flavor lines injected by daemons between turns.
var atmosphericPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^You hear in the distance the chirping of a song bird\.?$`),
	regexp.MustCompile(`(?i)^You hear the chirping of a song bird\.?$`),
	regexp.MustCompile(`(?i)^A song ?bird chirps(\s+in the distance)?\.?$`),
	regexp.MustCompile(`(?i)^The wind howls in the distance\.?$`),
	regexp.MustCompile(`(?i)^You hear a faint rustling (sound|noise)\.?$`),
}

// Interpreter/system notices that say nothing about game behavior.
var loadingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Loading\b.*$`),
	regexp.MustCompile(`(?i)^\[Press (RETURN|ENTER) or SPACE to continue\.?\]$`),
	regexp.MustCompile(`(?i)^Using \w+ formatting\.?$`),
	regexp.MustCompile(`(?i)^Please wait\.*$`),
	regexp.MustCompile(`(?i)^\[MORE\]$`),
}

// errorFamily rewrites synonymous phrasings of the same failure to one
// canonical token so that wording differences between engines do not count as
// behavioral divergence.
type errorFamily struct {
	token    string
	patterns []*regexp.Regexp
}

var errorFamilies = []errorFamily{
	{
		token: "[object-not-visible]",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^You can't see any .+ here!?$`),
			regexp.MustCompile(`(?i)^There is no .+ here[.!]?$`),
			regexp.MustCompile(`(?i)^You don't see (that|any .+) here[.!]?$`),
			regexp.MustCompile(`(?i)^I don't see (that|any .+) here[.!]?$`),
		},
	},
	{
		token: "[invalid-direction]",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^You can('|no)t go that way\.?$`),
			regexp.MustCompile(`(?i)^There is a wall there\.?$`),
			regexp.MustCompile(`(?i)^There is no way to go (in )?that direction\.?$`),
		},
	},
	{
		token: "[parse-error]",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^I don't understand (that|you)[.!]?$`),
			regexp.MustCompile(`(?i)^I don't know the word ".+"\.?$`),
			regexp.MustCompile(`(?i)^That sentence isn't one I recognize\.?$`),
			regexp.MustCompile(`(?i)^There was no verb in that sentence!?$`),
		},
	},
	{
		token: "[not-carrying]",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^You('re| are) not carrying (that|the .+)[.!]?$`),
			regexp.MustCompile(`(?i)^You don't have (that|the .+)[.!]?$`),
		},
	},
}

// Sentence endings that mark a line as complete rather than hard-wrapped.
var sentenceTerminal = ".!?:\"'"

// Lines shorter than this were never hard-wrapped by the interpreter, so the
// rejoin pass leaves them alone (room titles, one-word responses).
const wrapJoinMinLen = 40

// Normalizer applies the configured noise filters to engine output. Normalize
// is idempotent: applying it to its own output is a no-op.
type Normalizer struct {
	opts Options
}

// NewNormalizer builds a normalizer for the given options.
func NewNormalizer(opts Options) *Normalizer {
	return &Normalizer{opts: opts}
}

// Normalize returns the canonical form of one engine output.
func (n *Normalizer) Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")

	if n.opts.StripGameHeader {
		lines = stripLeading(lines, headerPatterns)
	}
	lines = n.filterLines(lines)

	if n.opts.NormalizeLineWrapping {
		lines = rejoinWrapped(lines)
	}

	// Runs after the rejoin so a hard-wrapped error message is seen whole.
	// The tokens are short, so the join pass cannot re-wrap them.
	if n.opts.NormalizeErrorMessages {
		for i, line := range lines {
			lines[i] = canonicalizeError(line)
		}
	}

	if n.opts.NormalizeWhitespace {
		lines = collapseWhitespace(lines)
	}

	out := strings.Join(lines, "\n")
	out = strings.TrimSpace(out)

	if n.opts.IgnoreCaseInMessages {
		out = strings.ToLower(out)
	}
	return out
}

// stripLeading drops leading lines matching any pattern, skipping blanks
// between header lines.
func stripLeading(lines []string, patterns []*regexp.Regexp) []string {
	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" && i+1 < len(lines) && matchesAny(strings.TrimSpace(lines[i+1]), patterns) {
			i++
			continue
		}
		if !matchesAny(trimmed, patterns) {
			break
		}
		i++
	}
	return lines[i:]
}

func (n *Normalizer) filterLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if n.opts.StripStatusBar && statusBarPattern.MatchString(line) {
			continue
		}
		if n.opts.FilterAtmosphericMessages && matchesAny(trimmed, atmosphericPatterns) {
			continue
		}
		if n.opts.FilterLoadingMessages && matchesAny(trimmed, loadingPatterns) {
			continue
		}
		if n.opts.StrictContentOnly && isPromptLine(trimmed) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// isPromptLine reports whether a line is only the interpreter prompt, with or
// without the echoed command.
func isPromptLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, ">")
}

func canonicalizeError(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, fam := range errorFamilies {
		for _, p := range fam.patterns {
			if p.MatchString(trimmed) {
				return fam.token
			}
		}
	}
	return line
}

// rejoinWrapped merges lines that were hard-wrapped mid-sentence: a
// sufficiently long line not ending in sentence-terminal punctuation is joined
// with the next non-blank line. Blank lines mark paragraph breaks and are
// never crossed.
func rejoinWrapped(lines []string) []string {
	var out []string
	i := 0
	for i < len(lines) {
		line := strings.TrimRight(lines[i], " \t")
		for i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next == "" || !looksWrapped(line) {
				break
			}
			line = line + " " + next
			i++
		}
		out = append(out, line)
		i++
	}
	return out
}

func looksWrapped(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < wrapJoinMinLen {
		return false
	}
	last := trimmed[len(trimmed)-1]
	return !strings.ContainsRune(sentenceTerminal, rune(last))
}

var spaceRun = regexp.MustCompile(`[ \t]+`)
var blankRun = regexp.MustCompile(`\n{3,}`)

func collapseWhitespace(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimSpace(spaceRun.ReplaceAllString(line, " ")))
	}
	joined := strings.Join(out, "\n")
	joined = blankRun.ReplaceAllString(joined, "\n\n")
	return strings.Split(joined, "\n")
}
