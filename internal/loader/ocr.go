package loader

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// extractPDFOCR rasterizes each page and runs tesseract over the
// images. Used only when the PDF has no usable text layer.
func extractPDFOCR(path string) (string, error) {
	if err := exec.Command("tesseract", "-v").Run(); err != nil {
		return "", fmt.Errorf("tesseract not available: %w", err)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF for OCR: %w", err)
	}
	defer doc.Close()

	var fullText bytes.Buffer
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			continue
		}

		tmpFile, err := os.CreateTemp("", "ocr-page-*.png")
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			continue
		}
		tmpPath := tmpFile.Name()
		tmpFile.Close()
		defer os.Remove(tmpPath)

		if err := savePNG(tmpPath, img); err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			continue
		}

		out, err := exec.Command("tesseract", tmpPath, "stdout", "-l", "eng").CombinedOutput()
		if err != nil {
			lastErr = fmt.Errorf("page %d: tesseract: %w", n+1, err)
			continue
		}

		pageText := strings.TrimSpace(string(out))
		if pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())
	if result == "" {
		if lastErr != nil {
			return "", fmt.Errorf("OCR produced no text: %w", lastErr)
		}
		return "", fmt.Errorf("OCR produced no text")
	}
	return result, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
