package sequence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxIncludeDepth bounds @include nesting; a chain this deep is almost
// certainly a corpus mistake even without a cycle.
const DefaultMaxIncludeDepth = 8

// ParseError is a structured parse failure carrying the file and line it
// occurred on.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Parser parses sequence files. The zero value uses DefaultMaxIncludeDepth.
type Parser struct {
	MaxIncludeDepth int
}

// Parse parses path with default settings.
func Parse(path string) (*Sequence, error) {
	return (&Parser{}).ParseFile(path)
}

// ParseFile parses one sequence file, resolving @include directives relative
// to the including file.
func (p *Parser) ParseFile(path string) (*Sequence, error) {
	maxDepth := p.MaxIncludeDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxIncludeDepth
	}

	seq := &Sequence{Metadata: map[string]string{}, File: path}
	if err := parseInto(seq, path, 0, maxDepth, map[string]bool{}); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	seq.ID = firstNonEmpty(seq.Metadata["id"], base)
	seq.Name = firstNonEmpty(seq.Metadata["name"], seq.ID)
	seq.Description = seq.Metadata["description"]
	return seq, nil
}

// parseInto appends commands from path into seq. Metadata is only read at
// depth 0: an included file contributes commands, not identity.
func parseInto(seq *Sequence, path string, depth, maxDepth int, visiting map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if visiting[abs] {
		return &ParseError{File: path, Line: 0, Msg: "circular @include"}
	}
	if depth > maxDepth {
		return &ParseError{File: path, Line: 0, Msg: fmt.Sprintf("@include depth exceeds %d", maxDepth)}
	}
	visiting[abs] = true
	defer delete(visiting, abs)

	data, err := os.ReadFile(path)
	if err != nil {
		return &ParseError{File: path, Line: 0, Msg: err.Error()}
	}

	for i, raw := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue

		case strings.HasPrefix(line, "#!"):
			if depth > 0 {
				continue
			}
			key, value, ok := strings.Cut(line[2:], ":")
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				return &ParseError{File: path, Line: lineNo, Msg: "metadata line must be #!key: value"}
			}
			seq.Metadata[key] = strings.TrimSpace(value)

		case strings.HasPrefix(line, "#"):
			continue

		case line == "@include" || strings.HasPrefix(line, "@include "):
			target := strings.TrimSpace(strings.TrimPrefix(line, "@include"))
			if target == "" {
				return &ParseError{File: path, Line: lineNo, Msg: "@include requires a path"}
			}
			included := filepath.Join(filepath.Dir(path), target)
			if err := parseInto(seq, included, depth+1, maxDepth, visiting); err != nil {
				var pe *ParseError
				if errors.As(err, &pe) && pe.Line == 0 {
					// Attribute unresolvable includes to the directive line.
					return &ParseError{File: path, Line: lineNo, Msg: pe.Msg}
				}
				return err
			}

		default:
			seq.Commands = append(seq.Commands, line)
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// LoadDir parses every .txt and .seq file in dir (non-recursive), in name
// order. Parse failures do not hide successfully parsed sequences; they are
// joined into the returned error alongside the partial result.
func LoadDir(dir string) ([]*Sequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read sequence dir: %w", err)
	}

	var (
		out  []*Sequence
		errs []error
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".txt" && ext != ".seq" {
			continue
		}
		seq, err := Parse(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, seq)
	}
	return out, errors.Join(errs...)
}
