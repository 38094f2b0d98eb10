package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadPaths decodes a JSON path array from r.
//
// The input must be a JSON array of strings as produced by [WritePaths].
// ReadPaths does not close r.
func ReadPaths(r io.Reader) ([]string, error) {
	var paths []string
	if err := json.NewDecoder(r).Decode(&paths); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return paths, nil
}

// ImportPaths reads a JSON path list from the file at path.
// This is a convenience wrapper around [ReadPaths] for file-based input.
func ImportPaths(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPaths(f)
}
