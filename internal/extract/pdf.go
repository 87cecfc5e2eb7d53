// ABOUTME: PDF text extraction with magic-header validation and page tracking
// ABOUTME: Returns a map of 1-based page number to cleaned page text
package extract

import (
	"bytes"
	"log"
	"os"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF")

// validatePDFHeader checks the first four bytes of the file against the PDF
// magic signature before any full parsing is attempted.
func validatePDFHeader(filePath string) bool {
	f, err := os.Open(filePath)
	if err != nil {
		log.Printf("[Extract] Cannot open PDF %s: %v", filePath, err)
		return false
	}
	defer f.Close()

	header := make([]byte, 4)
	if _, err := f.Read(header); err != nil {
		log.Printf("[Extract] Cannot read PDF header %s: %v", filePath, err)
		return false
	}
	return bytes.Equal(header, pdfMagic)
}

// PDFPages extracts text from a PDF keyed by 1-based page number. Pages
// that fail to parse or contain no text are skipped. Any file-level failure
// returns an empty map.
func (e *Extractor) PDFPages(filePath string) map[int]string {
	pageTexts := make(map[int]string)

	if _, err := os.Stat(filePath); err != nil {
		log.Printf("[Extract] PDF file not found: %s", filePath)
		return pageTexts
	}

	if !validatePDFHeader(filePath) {
		log.Printf("[Extract] File is not a valid PDF: %s", filePath)
		return pageTexts
	}

	f, reader, err := pdf.Open(filePath)
	if err != nil {
		log.Printf("[Extract] Error opening PDF %s: %v", filePath, err)
		return pageTexts
	}
	defer f.Close()

	totalPages := reader.NumPage()
	log.Printf("[Extract] Processing PDF with %d pages", totalPages)

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("[Extract] Error extracting text from page %d: %v", pageNum, err)
			continue
		}

		cleaned := CleanText(text)
		if cleaned == "" {
			log.Printf("[Extract] Empty text on page %d", pageNum)
			continue
		}
		pageTexts[pageNum] = cleaned
	}

	return pageTexts
}

// PDF extracts the whole document as a single cleaned text blob, joining
// pages in order.
func (e *Extractor) PDF(filePath string) string {
	pages := e.PDFPages(filePath)
	if len(pages) == 0 {
		return ""
	}

	maxPage := 0
	for n := range pages {
		if n > maxPage {
			maxPage = n
		}
	}

	var blocks []string
	for n := 1; n <= maxPage; n++ {
		if text, ok := pages[n]; ok {
			blocks = append(blocks, text)
		}
	}
	return joinBlocks(blocks)
}
