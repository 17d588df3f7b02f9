// Package transcripts persists engine transcripts as JSON files, optionally
// gzip-compressed. Filenames are derived from the sequence ID and the engine
// source so a directory of recordings doubles as a replay corpus.
package transcripts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jsredmond/zorkparity/internal/models"
	"github.com/klauspost/compress/gzip"
)

const (
	extJSON = ".json"
	extGzip = ".json.gz"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "unnamed"
	}
	return s
}

// Filename returns the on-disk name for a transcript of the given sequence
// from the given engine source.
func Filename(sequenceID, source string, compressed bool) string {
	ext := extJSON
	if compressed {
		ext = extGzip
	}
	return fmt.Sprintf("%s-%s%s", sanitizeName(sequenceID), sanitizeName(source), ext)
}

// Write serializes a transcript into dir and returns the path written.
// Compression is chosen by the compressed flag; long walkthrough transcripts
// shrink roughly tenfold under gzip.
func Write(dir string, sequenceID string, t *models.Transcript, compressed bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}

	if compressed {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return "", fmt.Errorf("compress transcript: %w", err)
		}
		if err := zw.Close(); err != nil {
			return "", fmt.Errorf("compress transcript: %w", err)
		}
		data = buf.Bytes()
	}

	path := filepath.Join(dir, Filename(sequenceID, t.Source, compressed))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}

// Read loads a transcript from path, transparently decompressing .json.gz
// files.
func Read(path string) (*models.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompress transcript %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	var t models.Transcript
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode transcript %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Find locates the stored transcript for a sequence and source in dir,
// preferring the uncompressed file when both exist. Returns os.ErrNotExist
// when neither is present.
func Find(dir, sequenceID, source string) (string, error) {
	for _, compressed := range []bool{false, true} {
		path := filepath.Join(dir, Filename(sequenceID, source, compressed))
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("transcript for %s/%s in %s: %w", sequenceID, source, dir, os.ErrNotExist)
}

// LoadDir reads every transcript in dir (non-recursive). Files that are not
// transcripts are skipped silently; files that look like transcripts but fail
// to parse are an error.
func LoadDir(dir string) ([]*models.Transcript, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read transcript dir: %w", err)
	}

	var out []*models.Transcript
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, extJSON) && !strings.HasSuffix(name, extGzip) {
			continue
		}
		t, err := Read(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
