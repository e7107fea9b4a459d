package document

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtract_TXT(t *testing.T) {
	path := writeTemp(t, "notes.txt", []byte("The quick brown fox.\n"))

	doc, err := Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Filename != "notes.txt" {
		t.Errorf("expected filename notes.txt, got %q", doc.Filename)
	}
	if doc.Text != "The quick brown fox." {
		t.Errorf("unexpected text: %q", doc.Text)
	}
}

func TestExtract_MD(t *testing.T) {
	path := writeTemp(t, "readme.md", []byte("# Title\n\nBody text."))

	doc, err := Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "# Title\n\nBody text." {
		t.Errorf("unexpected text: %q", doc.Text)
	}
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "image.png", []byte{0x89, 0x50})

	if _, err := Extract(path); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestExtract_EmptyTXT(t *testing.T) {
	path := writeTemp(t, "empty.txt", nil)

	if _, err := Extract(path); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestDecodeText_UTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	if got := decodeText(data); got != "hello" {
		t.Errorf("BOM must be stripped, got %q", got)
	}
}

func TestDecodeText_UTF16LE(t *testing.T) {
	// "hi" with a little-endian BOM.
	data := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	if got := decodeText(data); got != "hi" {
		t.Errorf("expected %q, got %q", "hi", got)
	}
}

func TestDecodeText_UTF16BE(t *testing.T) {
	data := []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}
	if got := decodeText(data); got != "hi" {
		t.Errorf("expected %q, got %q", "hi", got)
	}
}

func TestDecodeText_Latin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 and invalid standalone UTF-8.
	data := []byte{'c', 'a', 'f', 0xE9}
	if got := decodeText(data); got != "café" {
		t.Errorf("expected %q, got %q", "café", got)
	}
}

func TestStripTags(t *testing.T) {
	in := `<w:p><w:t>Hello world</w:t></w:p>`
	if got := stripTags(in); got != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", got)
	}
}
