package ingestion

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor turns candidate résumé PDFs into plain text.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract opens the document at path and concatenates the text of every page
// in page order. Any I/O or parse failure, and a document with no extractable
// text at all, is reported as an *ExtractionError.
func (e *Extractor) Extract(path string) (text string, err error) {
	// The pdf package panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Path: path, Cause: fmt.Errorf("parse pdf: %v", r)}
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Cause: err}
	}
	defer file.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Path: path, Cause: fmt.Errorf("page %d: %w", i, err)}
		}

		sb.WriteString(content)
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", &ExtractionError{Path: path, Cause: errNoText}
	}

	return sb.String(), nil
}
