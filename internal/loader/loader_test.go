package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractText(t *testing.T) {
	path := writeTemp(t, "cv.txt", "John Smith\nSenior Go Developer\n")
	text, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "John Smith\nSenior Go Developer" {
		t.Errorf("text = %q", text)
	}
}

func TestExtractTextEmpty(t *testing.T) {
	path := writeTemp(t, "empty.txt", "   \n\t\n")
	_, err := Extract(path)
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("err = %v, want ErrEmptyContent", err)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	for _, name := range []string{"cv.exe", "cv.png", "cv"} {
		path := writeTemp(t, name, "irrelevant")
		_, err := Extract(path)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Extract(%s) err = %v, want ErrUnsupportedFormat", name, err)
		}
	}
}

func TestExtractCaseInsensitiveExtension(t *testing.T) {
	path := writeTemp(t, "cv.TXT", "Jane Doe\nPlatform Engineer")
	if _, err := Extract(path); err != nil {
		t.Errorf("uppercase extension rejected: %v", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, ErrCorruptFile) {
		t.Errorf("err = %v, want ErrCorruptFile", err)
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	// Not a real PDF; the parser must fail cleanly, never panic.
	path := writeTemp(t, "cv.pdf", "this is not a pdf")
	_, err := Extract(path)
	if err == nil {
		t.Fatal("expected an error for a corrupt pdf")
	}
	if !errors.Is(err, ErrCorruptFile) && !errors.Is(err, ErrEmptyContent) {
		t.Errorf("err = %v, want a typed extraction error", err)
	}
}

func TestExtractCorruptDocx(t *testing.T) {
	path := writeTemp(t, "cv.docx", "this is not a zip archive")
	_, err := Extract(path)
	if !errors.Is(err, ErrCorruptFile) {
		t.Errorf("err = %v, want ErrCorruptFile", err)
	}
}

func TestExtractTextInvalidUTF8(t *testing.T) {
	path := writeTemp(t, "cv.txt", "Valid name\xff\xfe rest of CV")
	text, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text == "" {
		t.Error("invalid UTF-8 bytes should be dropped, not the whole file")
	}
}

func TestStripXMLTags(t *testing.T) {
	got := stripXMLTags(`<w:p><w:t>Hello</w:t><w:t>World</w:t></w:p>`)
	if got != "Hello World" {
		t.Errorf("stripXMLTags = %q, want %q", got, "Hello World")
	}
}
