package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func TestExtractBytes_plain(t *testing.T) {
	e := NewExtractor()
	out, err := e.ExtractBytes([]byte("paracetamol 500mg for fever"), ".txt")
	if err != nil {
		t.Fatalf("extract plain: %v", err)
	}
	if out != "paracetamol 500mg for fever" {
		t.Errorf("got %q", out)
	}
}

func TestExtractBytes_invalidUTF8(t *testing.T) {
	e := NewExtractor()
	out, err := e.ExtractBytes([]byte{0x61, 0xff, 0x62}, ".md")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Errorf("valid bytes should survive: %q", out)
	}
	if !strings.Contains(out, "�") {
		t.Errorf("invalid bytes should be replaced: %q", out)
	}
}

func TestExtractBytes_unknownExtensionFallsBackToPlain(t *testing.T) {
	e := NewExtractor()
	out, err := e.ExtractBytes([]byte("plain content"), ".dat")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out != "plain content" {
		t.Errorf("got %q", out)
	}
}

func TestExtractBytes_docx(t *testing.T) {
	docXML := `<?xml version="1.0"?><w:document><w:body>` +
		`<w:p w:rsidR="0"><w:r><w:t>Amoxicillin is</w:t></w:r>` +
		`<w:r><w:t xml:space="preserve">an antibiotic</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(docXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor()
	out, err := e.ExtractBytes(buf.Bytes(), ".docx")
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	if !strings.Contains(out, "Amoxicillin is") || !strings.Contains(out, "an antibiotic") {
		t.Errorf("got %q", out)
	}
}

func TestExtractBytes_docxNotZip(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("not a zip"), ".docx"); err == nil {
		t.Error("expected error for invalid docx")
	}
}

func TestExtractBytes_pdfInvalid(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("not a pdf"), ".pdf"); err == nil {
		t.Error("expected error for invalid pdf")
	}
}

func TestExtract_missingFile(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Extract("/nonexistent/file.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
