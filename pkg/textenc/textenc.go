// Package textenc decodes uploaded text files of unknown encoding.
// Brazilian ERP exports arrive as UTF-8, Windows-1252 or Latin-1 depending
// on which system produced them, so decoding tries each in turn and never
// fails outright.
package textenc

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decode converts raw file bytes to a string. It tries UTF-8 first, then
// Windows-1252, then falls back to a lossy Latin-1 decode. It never
// returns an error: the last step accepts any byte sequence.
func Decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if utf8.Valid(b) {
		return string(b)
	}
	if out, err := charmap.Windows1252.NewDecoder().Bytes(b); err == nil {
		return string(out)
	}
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(out)
}
