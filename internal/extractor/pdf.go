package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDF concatenates the plain text of every page in page order,
// each page followed by a newline. A page that cannot be read still
// contributes its newline. The whole document failing to parse is
// reported as an error; callers degrade to empty content.
func ExtractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)

	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if !page.V.IsNull() {
			if text, err := page.GetPlainText(nil); err == nil {
				textBuilder.WriteString(text)
			}
		}
		textBuilder.WriteString("\n")
	}

	return Sanitize(textBuilder.String()), nil
}
