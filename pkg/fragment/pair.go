package fragment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const filePerm = 0o644

// Pair is the original and modified fragment of one bin. The original is
// written once at extraction; the modified copy takes point edits.
type Pair struct {
	Original string
	Modified string
}

func (p Pair) Dir() string { return filepath.Dir(p.Modified) }

// Path returns the file of variant v.
func (p Pair) Path(v Variant) string {
	if v == Modified {
		return p.Modified
	}
	return p.Original
}

// Populated reports whether the modified fragment exists. Presence alone
// decides; an existing file is never re-extracted.
func (p Pair) Populated() bool {
	info, err := os.Stat(p.Modified)
	return err == nil && info.Mode().IsRegular()
}

// Write stores text as both sides of the pair, creating the bin directory.
func (p Pair) Write(text string) error {
	if err := os.MkdirAll(p.Dir(), 0o755); err != nil {
		return fmt.Errorf("fragment: create %s: %w", p.Dir(), err)
	}
	for _, path := range []string{p.Original, p.Modified} {
		if err := WriteFileAtomic(path, []byte(text), filePerm); err != nil {
			return err
		}
	}
	return nil
}

// EnsureModified creates the modified fragment as a byte copy of the
// original when it is missing. It reports whether a copy was made.
func (p Pair) EnsureModified() (bool, error) {
	_, err := os.Stat(p.Modified)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("fragment: stat %s: %w", p.Modified, err)
	}

	data, err := os.ReadFile(p.Original)
	if err != nil {
		return false, fmt.Errorf("fragment: read original: %w", err)
	}
	if err := WriteFileAtomic(p.Modified, data, filePerm); err != nil {
		return false, err
	}
	return true, nil
}

func (p Pair) Read(v Variant) (string, error) {
	data, err := os.ReadFile(p.Path(v))
	if err != nil {
		return "", fmt.Errorf("fragment: read %s: %w", v, err)
	}
	return string(data), nil
}

// ReplaceModified atomically swaps in new modified content.
func (p Pair) ReplaceModified(text string) error {
	return WriteFileAtomic(p.Modified, []byte(text), filePerm)
}
