package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// LeftTree and RightTree are small GEDCOM fixtures describing overlapping
// families. I1/I2 pair automatically, I1 differs on sex, I3 has no birth
// date, and each side has one person the other lacks.
const (
	LeftTree = `0 HEAD
1 CHAR UTF-8
0 @I1@ INDI
1 NAME John /Smith/
1 SEX M
1 BIRT
2 DATE 1 JAN 1900
2 PLAC Boston
1 FAMS @F1@
0 @I2@ INDI
1 NAME Mary /Jones/
1 BIRT
2 DATE 1902
0 @I3@ INDI
1 NAME Peter /Smith/
0 @I4@ INDI
1 NAME Alice /Brown/
1 BIRT
2 DATE 1930
0 @F1@ FAM
1 HUSB @I1@
0 TRLR
`
	RightTree = `0 HEAD
1 CHAR UTF-8
0 @P1@ INDI
1 NAME Jon /Smith/
1 BIRT
2 DATE 1 JAN 1900
2 PLAC Boston
0 @P2@ INDI
1 NAME Mary /Jones/
1 BIRT
2 DATE 1902
0 @P3@ INDI
1 NAME Peter /Smith/
0 @P5@ INDI
1 NAME Zed /Young/
1 BIRT
2 DATE 1990
0 TRLR
`
)

// WriteGEDCOM writes content to name under dir and returns the path. With
// crlf set, line endings are converted to CRLF first.
func WriteGEDCOM(t testing.TB, dir, name, content string, crlf bool) string {
	t.Helper()

	if crlf {
		content = strings.ReplaceAll(content, "\n", "\r\n")
	}
	return WriteFile(t, filepath.Join(dir, name), []byte(content))
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
