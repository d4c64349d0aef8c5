package loader

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// normalizeEncoding strips a UTF-8 BOM and transcodes single-byte Latin
// content to UTF-8. Bank exports in this domain are either UTF-8 or ISO
// 8859-1; anything already valid UTF-8 passes through untouched.
func normalizeEncoding(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}
	if utf8.Valid(data) {
		return data
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return decoded
}
