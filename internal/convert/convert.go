// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns downloaded PDFs into plain-text markdown documents.
package convert

import (
	"fmt"
	"strings"
)

// TextExtractor pulls per-page plain text from a PDF file. The pipeline is
// tested against stub extractors; the real one wraps a PDF parsing library.
type TextExtractor interface {
	Pages(pdfPath string) ([]string, error)
}

// ToMarkdown extracts every page of the PDF at pdfPath and joins them into a
// single markdown document. A page heading precedes each page's text so page
// provenance survives the conversion. Paragraphs are split on blank lines
// and inner newlines collapsed to spaces.
func ToMarkdown(ex TextExtractor, pdfPath string) (string, error) {
	pages, err := ex.Pages(pdfPath)
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", pdfPath, err)
	}

	var b strings.Builder
	for i, page := range pages {
		fmt.Fprintf(&b, "\n## Page %d\n\n", i+1)
		for _, para := range strings.Split(page, "\n\n") {
			clean := strings.TrimSpace(strings.ReplaceAll(para, "\n", " "))
			if clean != "" {
				b.WriteString(clean)
				b.WriteString("\n\n")
			}
		}
	}
	return b.String(), nil
}
