package gedfile

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

// Canonical encoding names.
const (
	EncodingAuto    = "auto"
	EncodingUTF8    = "utf-8"
	EncodingUTF16   = "utf-16"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
	EncodingANSI    = "windows-1252"
	EncodingLatin1  = "iso-8859-1"
	EncodingIBMPC   = "ibm437"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// headerCharsets maps header CHAR values to encodings. ANSEL has no decoder
// here and is read as windows-1252, which keeps ASCII intact but garbles
// ANSEL diacritics.
var headerCharsets = map[string]string{
	"ANSI":    EncodingANSI,
	"ANSEL":   EncodingANSI,
	"IBMPC":   EncodingIBMPC,
	"IBM-PC":  EncodingIBMPC,
	"ASCII":   EncodingUTF8,
	"UTF-8":   EncodingUTF8,
	"UTF8":    EncodingUTF8,
	"UNICODE": EncodingUTF8,
}

// headerScanLimit bounds how much of the file is searched for a CHAR line.
const headerScanLimit = 64 * 1024

// Detect picks the encoding for data. A byte order mark always wins; then a
// forced encoding other than "auto"; then the header CHAR line. Files with
// nothing to go on are read as UTF-8, or windows-1252 when they are not valid
// UTF-8.
func Detect(data []byte, forced string) string {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return EncodingUTF16BE
	}

	forced = strings.ToLower(strings.TrimSpace(forced))
	if forced == EncodingUTF16 {
		return guessUTF16(data)
	}
	if forced != "" && forced != EncodingAuto {
		return forced
	}

	if enc := sniffUTF16(data); enc != "" {
		return enc
	}
	if enc, ok := headerCharset(data); ok {
		return enc
	}
	if !utf8.Valid(data) {
		return EncodingANSI
	}
	return EncodingUTF8
}

// Decode converts data to NFC-normalized UTF-8 text using the encoding Detect
// selects for forced.
func Decode(data []byte, forced string) (string, error) {
	text, _, err := decode(data, forced)
	return text, err
}

func decode(data []byte, forced string) (string, string, error) {
	name := Detect(data, forced)
	enc, err := lookup(name)
	if err != nil {
		return "", name, err
	}

	var out []byte
	if enc == nil {
		out = bytes.TrimPrefix(data, bomUTF8)
		if !utf8.Valid(out) {
			out = bytes.ToValidUTF8(out, []byte(string(utf8.RuneError)))
		}
	} else {
		out, err = enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", name, fmt.Errorf("decode %s: %w", name, err)
		}
	}
	return norm.NFC.String(string(out)), name, nil
}

// lookup returns nil for UTF-8, which needs no transform.
func lookup(name string) (encoding.Encoding, error) {
	switch name {
	case EncodingUTF8:
		return nil, nil
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case EncodingANSI:
		return charmap.Windows1252, nil
	case EncodingLatin1:
		return charmap.ISO8859_1, nil
	case EncodingIBMPC:
		return charmap.CodePage437, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// sniffUTF16 recognizes BOM-less UTF-16 by the zero byte paired with the
// leading '0' of the first record.
func sniffUTF16(data []byte) string {
	if len(data) < 2 {
		return ""
	}
	switch {
	case data[0] == '0' && data[1] == 0:
		return EncodingUTF16LE
	case data[0] == 0 && data[1] == '0':
		return EncodingUTF16BE
	}
	return ""
}

func guessUTF16(data []byte) string {
	if len(data) >= 2 && data[0] == 0 && data[1] != 0 {
		return EncodingUTF16BE
	}
	return EncodingUTF16LE
}

// headerCharset finds "1 CHAR <value>" inside the HEAD record.
func headerCharset(data []byte) (string, bool) {
	if len(data) > headerScanLimit {
		data = data[:headerScanLimit]
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), headerScanLimit)
	seenHead := false
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		if fields[0] == "0" {
			if seenHead {
				return "", false
			}
			seenHead = fields[1] == "HEAD"
			continue
		}
		if seenHead && fields[0] == "1" && fields[1] == "CHAR" && len(fields) > 2 {
			enc, ok := headerCharsets[strings.ToUpper(fields[2])]
			return enc, ok
		}
	}
	return "", false
}
