package extractor

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Sanitize normalizes extracted text before it reaches the record
// store: line endings become "\n", NUL bytes are dropped and byte
// sequences that are not valid UTF-8 fall back to a Windows-1252 then
// Latin-1 decode. Older PDFs from court systems frequently carry
// legacy-encoded metadata and content streams. Line structure is
// preserved untouched.
func Sanitize(text string) string {
	if !utf8.ValidString(text) {
		text = decodeLegacy([]byte(text))
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\x00", "")

	return text
}

func decodeLegacy(data []byte) string {
	decoder := charmap.Windows1252.NewDecoder()
	if decoded, _, err := transform.Bytes(decoder, data); err == nil {
		return string(decoded)
	}

	decoder = charmap.ISO8859_1.NewDecoder()
	if decoded, _, err := transform.Bytes(decoder, data); err == nil {
		return string(decoded)
	}

	return string(data)
}
