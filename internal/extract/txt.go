// ABOUTME: Plain-text extraction with an ordered encoding fallback chain
// ABOUTME: Tries utf-8, then latin-1, then cp1252; first successful decode wins
package extract

import (
	"log"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// txtDecoders is the ordered list of fallback decoders tried after utf-8.
var txtDecoders = []struct {
	name string
	enc  encoding.Encoding
}{
	{"latin-1", charmap.ISO8859_1},
	{"cp1252", charmap.Windows1252},
}

// Txt reads a plain-text file, trying utf-8 first and then each fallback
// encoding in order. Returns cleaned text, or empty if the file is missing
// or no encoding decodes it.
func (e *Extractor) Txt(filePath string) string {
	data, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("[Extract] TXT file not found: %s", filePath)
		return ""
	}
	if len(data) == 0 {
		return ""
	}

	if utf8.Valid(data) {
		return CleanText(string(data))
	}

	for _, d := range txtDecoders {
		decoded, err := d.enc.NewDecoder().Bytes(data)
		if err != nil {
			log.Printf("[Extract] Error decoding %s as %s: %v", filePath, d.name, err)
			continue
		}
		return CleanText(string(decoded))
	}

	log.Printf("[Extract] Could not decode TXT file: %s", filePath)
	return ""
}
