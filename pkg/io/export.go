package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WritePaths encodes paths as an indented JSON array and writes it to w.
// The array preserves order; the output can be re-read with [ReadPaths].
func WritePaths(paths []string, w io.Writer) error {
	if paths == nil {
		paths = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(paths); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportPaths writes paths to a JSON file at path.
// This is a convenience wrapper around [WritePaths] for file-based output.
func ExportPaths(paths []string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePaths(paths, f)
}
