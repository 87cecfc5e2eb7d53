// ABOUTME: DOCX and legacy DOC text extraction via docconv
// ABOUTME: Produces a single cleaned text blob, empty on any failure
package extract

import (
	"log"
	"os"
	"strings"

	"code.sajari.com/docconv"
)

// Docx extracts text from a DOCX or legacy DOC file. These formats have no
// page concept here, so the result is one cleaned blob.
func (e *Extractor) Docx(filePath string) string {
	if _, err := os.Stat(filePath); err != nil {
		log.Printf("[Extract] DOCX file not found: %s", filePath)
		return ""
	}

	res, err := docconv.ConvertPath(filePath)
	if err != nil {
		log.Printf("[Extract] Error extracting DOCX text from %s: %v", filePath, err)
		return ""
	}

	// Clean paragraph by paragraph and drop empties, then rejoin.
	var paragraphs []string
	for _, para := range strings.Split(res.Body, "\n") {
		if cleaned := CleanText(para); cleaned != "" {
			paragraphs = append(paragraphs, cleaned)
		}
	}
	return strings.Join(paragraphs, "\n")
}

func joinBlocks(blocks []string) string {
	return strings.Join(blocks, "\n\n")
}
