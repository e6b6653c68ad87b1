package gedfile_test

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"gedcompare/internal/gedfile"
	"gedcompare/internal/testsupport"
)

func TestReadFixture(t *testing.T) {
	path := testsupport.WriteGEDCOM(t, t.TempDir(), "left.ged", testsupport.LeftTree, false)

	set, err := gedfile.Read(path, gedfile.Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if set.Source != "left.ged" {
		t.Fatalf("source = %q, want left.ged", set.Source)
	}
	if set.Len() != 4 {
		t.Fatalf("expected 4 individuals, got %d", set.Len())
	}
	p, ok := set.Find("I1")
	if !ok || p.BirthPlace != "Boston" || p.Sex != "M" {
		t.Fatalf("unexpected I1: %+v", p)
	}
}

func TestReadCRLF(t *testing.T) {
	path := testsupport.WriteGEDCOM(t, t.TempDir(), "right.ged", testsupport.RightTree, true)

	set, err := gedfile.Read(path, gedfile.Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	p, ok := set.Find("P1")
	if !ok || p.BirthDate != "1 JAN 1900" || p.FullName != "Jon Smith" {
		t.Fatalf("unexpected P1: %+v", p)
	}
}

func TestReadNoIndividuals(t *testing.T) {
	path := testsupport.WriteGEDCOM(t, t.TempDir(), "empty.ged", "0 HEAD\n0 TRLR\n", false)

	_, err := gedfile.Read(path, gedfile.Options{})
	if !errors.Is(err, gedfile.ErrNoIndividuals) {
		t.Fatalf("expected ErrNoIndividuals, got %v", err)
	}
	if err.Error() != "no individuals found in empty.ged" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := gedfile.Read(t.TempDir()+"/absent.ged", gedfile.Options{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecodeHeaderCharsets(t *testing.T) {
	tests := []struct {
		name    string
		charset string
		raw     byte
	}{
		{"ansi", "ANSI", 0xE9},
		{"ansel falls back to ansi", "ANSEL", 0xE9},
		{"ibmpc", "IBMPC", 0x82},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte("0 HEAD\n1 CHAR " + tt.charset + "\n0 @I1@ INDI\n1 NAME Ren")
			data = append(data, tt.raw)
			data = append(data, []byte(" /Dubois/\n0 TRLR\n")...)

			text, err := gedfile.Decode(data, "auto")
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !strings.Contains(text, "René /Dubois/") {
				t.Fatalf("decoded text = %q", text)
			}
		})
	}
}

func TestDecodeUTF16WithBOM(t *testing.T) {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(testsupport.LeftTree)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := gedfile.Detect([]byte(encoded), "windows-1252"); got != gedfile.EncodingUTF16LE {
		t.Fatalf("Detect = %q, want BOM to win", got)
	}

	set, err := gedfile.Load("utf16.ged", []byte(encoded), gedfile.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Len() != 4 {
		t.Fatalf("expected 4 individuals, got %d", set.Len())
	}
}

func TestDecodeUTF16WithoutBOM(t *testing.T) {
	encoded, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().String(testsupport.RightTree)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := gedfile.Detect([]byte(encoded), ""); got != gedfile.EncodingUTF16BE {
		t.Fatalf("Detect = %q, want utf-16be", got)
	}
	text, err := gedfile.Decode([]byte(encoded), "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !strings.Contains(text, "1 NAME Zed /Young/") {
		t.Fatalf("decoded text missing record: %q", text)
	}
}

func TestDecodeForcedEncoding(t *testing.T) {
	data := []byte("0 HEAD\n1 CHAR UTF-8\n0 @I1@ INDI\n1 NAME J\xF6rg /Meyer/\n")
	text, err := gedfile.Decode(data, "iso-8859-1")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !strings.Contains(text, "Jörg /Meyer/") {
		t.Fatalf("decoded text = %q", text)
	}
}

func TestDecodeInvalidUTF8FallsBackToANSI(t *testing.T) {
	data := []byte("0 @I1@ INDI\n1 NAME Fran\xE7ois /Roy/\n")
	if got := gedfile.Detect(data, ""); got != gedfile.EncodingANSI {
		t.Fatalf("Detect = %q, want %q", got, gedfile.EncodingANSI)
	}
	text, err := gedfile.Decode(data, "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !strings.Contains(text, "François") {
		t.Fatalf("decoded text = %q", text)
	}
}

func TestDecodeNormalizesToNFC(t *testing.T) {
	// "e" followed by a combining acute accent.
	data := []byte("0 @I1@ INDI\n1 NAME Rene\u0301 /Dubois/\n")
	text, err := gedfile.Decode(data, "utf-8")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !strings.Contains(text, "Ren\u00e9 /Dubois/") {
		t.Fatalf("expected composed form, got %q", text)
	}
}

func TestDecodeUnsupportedEncoding(t *testing.T) {
	if _, err := gedfile.Decode([]byte("0 HEAD\n"), "klingon"); err == nil {
		t.Fatal("expected error for unsupported encoding")
	}
}

func TestDecodeStripsUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(testsupport.LeftTree)...)
	text, err := gedfile.Decode(data, "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !strings.HasPrefix(text, "0 HEAD") {
		t.Fatalf("BOM not stripped: %q", text[:10])
	}
}
