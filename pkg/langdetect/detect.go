// Package langdetect recognises Markdown files by name using the linguist
// data shipped with go-enry.
package langdetect

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Markdown is the linguist name of the Markdown language.
const Markdown = "Markdown"

// Language returns the linguist language for path, or "" when the name is
// ambiguous or unknown. Only the file name is consulted.
func Language(path string) string {
	name := filepath.Base(path)
	if lang, safe := enry.GetLanguageByFilename(name); safe {
		return lang
	}
	if lang, safe := enry.GetLanguageByExtension(name); safe {
		return lang
	}
	return ""
}

// IsMarkdown reports whether path names a Markdown file according to
// linguist, which knows extensions such as .mdown, .mkd and .ronn. Names
// linguist considers ambiguous (.md is shared with GCC machine
// descriptions) count when Markdown is one of the candidates.
func IsMarkdown(path string) bool {
	name := filepath.Base(path)
	if slices.Contains(enry.GetLanguagesByFilename(name, nil, nil), Markdown) {
		return true
	}
	return slices.Contains(enry.GetLanguagesByExtension(name, nil, nil), Markdown)
}

// IsVendored reports whether path lies in a directory conventionally used
// for third-party code (vendor/, node_modules/ and the like).
func IsVendored(path string) bool {
	path = filepath.ToSlash(path)
	if path == "" || path == "." {
		return false
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return enry.IsVendor(path)
}
