package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Result carries the plain text pulled out of an uploaded file.
type Result struct {
	Text      string
	PageCount int
}

// FromUpload extracts plain text from uploaded document bytes based on
// the filename extension. PDF pages are concatenated in order;
// txt/md files pass through after a UTF-8 check.
func FromUpload(filename string, data []byte) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		return fromPDF(data)
	case ".txt", ".md", ".markdown", "":
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("file %q is not valid UTF-8 text", filename)
		}
		return &Result{Text: string(data), PageCount: 1}, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
}

func fromPDF(data []byte) (*Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, fmt.Errorf("pdf contains no extractable text")
	}

	return &Result{Text: text, PageCount: numPages}, nil
}
