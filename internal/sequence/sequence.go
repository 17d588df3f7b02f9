// Package sequence parses the command-sequence file format: one command per
// line, `#` comments, `#!key: value` metadata, and `@include <path>` splicing
// with cycle and depth protection.
package sequence

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Sequence is one parsed command-sequence file.
type Sequence struct {
	ID          string
	Name        string
	Description string
	// Metadata holds every #! key, including the well-known ones above.
	Metadata map[string]string
	Commands []string
	// File is the path the sequence was parsed from, empty for synthetic
	// sequences.
	File string
}

// CommandCount returns the number of replayable commands.
func (s *Sequence) CommandCount() int {
	return len(s.Commands)
}

// CompareOverrides extracts `compare.*` metadata keys as a generic option map
// suitable for overlaying onto comparison defaults. Values parse as bool,
// then number, then comma-separated list, then plain string.
func (s *Sequence) CompareOverrides() map[string]any {
	out := make(map[string]any)
	for k, v := range s.Metadata {
		name, ok := strings.CutPrefix(k, "compare.")
		if !ok {
			continue
		}
		out[name] = parseMetaValue(v)
	}
	return out
}

func parseMetaValue(v string) any {
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	if strings.Contains(v, ",") {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return v
}

// Serialize renders the sequence back to the file format. Parsing the output
// yields the same commands and metadata; includes are already spliced, so the
// output is self-contained.
func Serialize(s *Sequence) string {
	var b strings.Builder

	keys := make([]string, 0, len(s.Metadata))
	for k := range s.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "#!%s: %s\n", k, s.Metadata[k])
	}
	if len(keys) > 0 {
		b.WriteString("\n")
	}
	for _, cmd := range s.Commands {
		b.WriteString(cmd)
		b.WriteString("\n")
	}
	return b.String()
}
