package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pastescout"
)

// readPaste returns the content of file, or of stdin when file is "-".
func readPaste(deps *Dependencies, file string) (string, error) {
	if file == "-" {
		if deps.Stdin == nil {
			return "", pastescout.Errorf(pastescout.EINVALID, "stdin is not available")
		}
		b, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return "", pastescout.Errorf(pastescout.ENOTFOUND, "file %q not found", file)
		}
		return "", err
	}
	return string(b), nil
}

// DetectSource guesses which site a file was pasted from. Markup and
// .html files are listings; text with the keyword table header is a
// keyword page; anything else is analytics text.
func DetectSource(name, content string) pastescout.Source {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return pastescout.SourceListing
	}
	trimmed := strings.TrimSpace(content)
	switch {
	case strings.HasPrefix(trimmed, "<"):
		return pastescout.SourceListing
	case strings.Contains(content, "EXCLUDE KEYWORDS"), strings.Contains(content, "Keywords related to"):
		return pastescout.SourceKeywords
	}
	return pastescout.SourceAnalytics
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
