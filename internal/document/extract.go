package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Extract reads the file at path and returns a Document with its plain
// text. Supported formats: .pdf, .docx, .txt, .md. The rest of the
// system only ever sees the extracted text; raw bytes stop here.
func Extract(path string) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	name := filepath.Base(path)

	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = extractPDF(path)
	case ".docx":
		text, err = extractDOCX(path)
	case ".txt", ".md":
		text, err = extractPlainText(path)
	default:
		return Document{}, fmt.Errorf("unsupported file format %q: upload PDF, DOCX, TXT or MD", ext)
	}
	if err != nil {
		return Document{}, fmt.Errorf("extract %s: %w", name, err)
	}

	return New(name, strings.TrimSpace(text)), nil
}

// extractPDF pulls the text of every page, keeping page markers so
// citations can reference page numbers.
func extractPDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", err
	}

	var b strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n--- Page %d ---\n", i)
		b.WriteString(pageText)
		b.WriteString("\n")
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("no text content found: the PDF may be image-based")
	}
	return b.String(), nil
}

func extractDOCX(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	content := r.Editable().GetContent()

	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		plain := stripTags(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}
		b.WriteString(plain)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// stripTags removes XML markup, keeping only character data.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// extractPlainText reads a text file, decoding UTF-8, UTF-16 (either
// byte order, detected via BOM) or Latin-1, in that order.
func extractPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("the text file is empty")
	}
	return decodeText(data), nil
}

func decodeText(data []byte) string {
	// UTF-16 with BOM.
	if len(data) >= 2 {
		if data[0] == 0xFF && data[1] == 0xFE {
			return decodeUTF16(data[2:], false)
		}
		if data[0] == 0xFE && data[1] == 0xFF {
			return decodeUTF16(data[2:], true)
		}
	}

	// UTF-8, with BOM stripped if present.
	if utf8.Valid(data) {
		return strings.TrimPrefix(string(data), "\ufeff")
	}

	// Latin-1 fallback: every byte maps directly to a code point.
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

func decodeUTF16(data []byte, bigEndian bool) string {
	u16 := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		if bigEndian {
			u16 = append(u16, uint16(data[i])<<8|uint16(data[i+1]))
		} else {
			u16 = append(u16, uint16(data[i])|uint16(data[i+1])<<8)
		}
	}
	return string(utf16.Decode(u16))
}
