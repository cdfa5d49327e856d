// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor reads the embedded text layer of a PDF, one page at a time.
// Scanned (image-only) PDFs yield empty pages; OCR is out of scope.
type PDFExtractor struct{}

// Pages returns the plain text of each page in page order. Encrypted or
// malformed PDFs fail here; the caller decides whether that is fatal.
func (PDFExtractor) Pages(pdfPath string) ([]string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	fonts := make(map[string]*pdf.Font)
	pages := make([]string, 0, r.NumPage())

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			return nil, fmt.Errorf("reading page %d of %s: %w", i, pdfPath, pageErr)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
