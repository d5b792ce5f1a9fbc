package extract

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thajiyev/quizextract/internal/common"
)

func writeDocx(t *testing.T, documentXML string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

const docxHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math"><w:body>`

const docxFooter = `</w:body></w:document>`

func TestExtractDOCXFormulaInfix(t *testing.T) {
	body := `<w:p>` +
		`<w:r><w:t xml:space="preserve">Area = </w:t></w:r>` +
		`<m:oMath><m:r><m:t>πr²</m:t></m:r></m:oMath>` +
		`<w:r><w:t xml:space="preserve"> when r=2</w:t></w:r>` +
		`</w:p>`
	path := writeDocx(t, docxHeader+body+docxFooter)

	res, err := NewExtractor(nil).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := strings.TrimRight(res.Text, "\n")
	if got != "Area = [FORMULA] when r=2" {
		t.Errorf("text = %q, want %q", got, "Area = [FORMULA] when r=2")
	}
	if res.Method != "docx" {
		t.Errorf("method = %q", res.Method)
	}
}

func TestExtractDOCXMathParaSinglePlaceholder(t *testing.T) {
	// a display-math paragraph wraps oMath inside oMathPara; one token, not two
	body := `<w:p><m:oMathPara><m:oMath><m:r><m:t>x=1</m:t></m:r></m:oMath></m:oMathPara></w:p>`
	path := writeDocx(t, docxHeader+body+docxFooter)

	res, err := NewExtractor(nil).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimRight(res.Text, "\n"); got != "[FORMULA]" {
		t.Errorf("text = %q, want single placeholder", got)
	}
}

func TestExtractDOCXParagraphOrder(t *testing.T) {
	body := `<w:p><w:r><w:t>first</w:t></w:r></w:p><w:p><w:r><w:t>second</w:t></w:r></w:p>`
	path := writeDocx(t, docxHeader+body+docxFooter)

	res, err := NewExtractor(nil).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimRight(res.Text, "\n"); got != "first\nsecond" {
		t.Errorf("text = %q", got)
	}
	if res.Pages != 2 {
		t.Errorf("paragraphs = %d, want 2", res.Pages)
	}
}

func TestExtractDOCXNoTextLayer(t *testing.T) {
	path := writeDocx(t, docxHeader+`<w:p></w:p>`+docxFooter)
	_, err := NewExtractor(nil).Extract(context.Background(), path)
	if !errors.Is(err, common.ErrUnreadableFile) {
		t.Fatalf("error = %v, want ErrUnreadableFile", err)
	}
}

func TestExtractLegacyBinaryDoc(t *testing.T) {
	// an old-format .doc is not a ZIP container; it passes the extension
	// check but must fail as unreadable, not with a raw zip error
	path := filepath.Join(t.TempDir(), "legacy.doc")
	if err := os.WriteFile(path, []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewExtractor(nil).Extract(context.Background(), path)
	if !errors.Is(err, common.ErrUnreadableFile) {
		t.Fatalf("error = %v, want ErrUnreadableFile", err)
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewExtractor(nil).Extract(context.Background(), path)
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}
