package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Typed extraction failures. The pipeline matches on these to report
// per-file status without aborting the batch.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrCorruptFile       = errors.New("corrupt file")
	ErrEmptyContent      = errors.New("empty content")
	ErrEncryptedFile     = errors.New("encrypted file")
)

// minTextLength is the threshold below which a PDF extraction is
// considered to have produced nothing useful and OCR is attempted.
const minTextLength = 100

// Extract returns the plain text of a CV or JD file. Supported
// formats are .txt, .pdf and .docx; anything else fails with
// ErrUnsupportedFormat. Malformed input never panics: every failure
// comes back as one of the typed errors above.
func Extract(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return extractText(path)
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDocx(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func extractText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	text := strings.TrimSpace(strings.ToValidUTF8(string(raw), ""))
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyContent, filepath.Base(path))
	}
	return text, nil
}

func extractPDF(path string) (text string, err error) {
	// ledongthuc/pdf is known to panic on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: pdf parser panic: %v", ErrCorruptFile, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return "", fmt.Errorf("%w: %s", ErrEncryptedFile, filepath.Base(path))
		}
		return "", fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	text = strings.TrimSpace(sb.String())
	if len(text) >= minTextLength {
		return text, nil
	}

	// Scanned PDFs carry no text layer. Fall back to OCR before
	// giving up on the file.
	if ocrText, ocrErr := extractPDFOCR(path); ocrErr == nil {
		return ocrText, nil
	}
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyContent, filepath.Base(path))
	}
	return text, nil
}

func extractDocx(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	defer doc.Close()

	text := strings.TrimSpace(stripXMLTags(doc.Editable().GetContent()))
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyContent, filepath.Base(path))
	}
	return text, nil
}

// stripXMLTags reduces the raw document.xml content returned by the
// docx library to its text runs.
func stripXMLTags(content string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			sb.WriteRune(' ')
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
