package io

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadItems reads all of r and splits it into items on "\n".
// ReadItems does not close r.
func ReadItems(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return SplitItems(string(data)), nil
}

// SplitItems splits s on "\n" without trimming or filtering.
func SplitItems(s string) []string {
	return strings.Split(s, "\n")
}

// ImportItems reads the word list at path. Errors wrap the underlying
// *fs.PathError, so errors.Is(err, fs.ErrNotExist) reports a missing file.
func ImportItems(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	items, err := ReadItems(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}
