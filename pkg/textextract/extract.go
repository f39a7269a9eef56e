// Package textextract pulls plain text out of uploaded syllabus documents.
// Supported formats are PDF, DOCX and plain text; the caller routes on the
// file extension.
package textextract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Extractor converts one document format into plain text.
type Extractor interface {
	// Extract returns the document text. A document with no readable text
	// yields an empty string and no error; errors are reserved for
	// malformed containers.
	Extract(data []byte) (string, error)
}

var extractors = map[string]Extractor{
	".pdf":  PDFExtractor{},
	".docx": DOCXExtractor{},
	".txt":  PlainExtractor{},
}

// Supported reports whether the filename's extension maps to an extractor.
func Supported(filename string) bool {
	_, ok := extractors[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// FromFile routes the document to the extractor for its extension.
func FromFile(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	extractor, ok := extractors[ext]
	if !ok {
		return "", fmt.Errorf("unsupported file extension %q", ext)
	}
	return extractor.Extract(data)
}

// PlainExtractor passes text files through untouched apart from BOM removal.
type PlainExtractor struct{}

func (PlainExtractor) Extract(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	return string(data), nil
}
