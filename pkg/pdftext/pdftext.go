// Package pdftext extracts plain text from PDF documents, one string per
// page. Layout analysis and OCR are out of scope: the extractor only
// surfaces whatever text the PDF already carries.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extract returns the concatenated plain text of every page, separated by
// newlines. Pages that yield no text contribute an empty segment.
func Extract(data []byte) (string, error) {
	pages, err := Pages(data)
	if err != nil {
		return "", err
	}
	return strings.Join(pages, "\n"), nil
}

// Pages returns the plain text of each page in order. A page that cannot
// be decoded contributes an empty string rather than failing the document.
func Pages(data []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		pages = append(pages, pageText(r.Page(i)))
	}
	return pages, nil
}

// pageText recovers from panics because the underlying library panics on
// some malformed content streams.
func pageText(p pdf.Page) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	if p.V.IsNull() {
		return ""
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// IsPDF reports whether the bytes look like a PDF document.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF"))
}
