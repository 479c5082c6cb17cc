package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls plain text from every readable page. Medical guideline PDFs
// often contain a few malformed pages (scanned inserts, broken fonts); those
// are skipped so the rest of the document still reaches the index. Pages are
// separated by blank lines so the chunker can split on page boundaries.
func extractPDF(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	var buf bytes.Buffer
	numPages := r.NumPage()
	extracted := 0
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || text == "" {
			continue
		}
		if extracted > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(text)
		extracted++
	}
	if extracted == 0 && numPages > 0 {
		return "", fmt.Errorf("no extractable text in %d page(s)", numPages)
	}
	return buf.String(), nil
}
