// Package parsers provides parsers for importing record rows from
// various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// Rowd is one imported row: column name to raw cell value.
type Rowd = map[string]string

// Parser defines the interface for reading record rows from a format.
type Parser interface {
	Parse(r io.Reader) ([]Rowd, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the parser matching a file's extension. Extensionless
// paths default to CSV; an unrecognized extension returns nil so the
// caller can reject the file instead of misreading it.
func ForFile(path string) Parser {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return &CSVParser{}
	}
	return ForFormat(ext)
}
