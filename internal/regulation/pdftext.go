// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package regulation turns authoritative legal-text PDFs into tagged
// clause rows: extract page text, segment on citation headings, and ask
// the oracle which passages regulate a data element.
// See docs/ARCHITECTURE § Regulation Clauses.
package regulation

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageTexts extracts plain text from every page of the PDF at path, in
// page order. Pages that cannot be decoded contribute an empty string
// rather than failing the document.
func PageTexts(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	texts := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		text, err := pageText(p)
		if err != nil {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// pageText prefers row-based extraction, which keeps word spacing and
// reading order intact, and falls back to the plain-text stream.
func pageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	var sb strings.Builder
	for _, row := range rows {
		if row == nil || len(row.Content) == 0 {
			continue
		}
		for i, word := range row.Content {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(word.S)
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
