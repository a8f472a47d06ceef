package parser

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// EscapeCellText encodes text so that it reads back unchanged once stored
// as a string cell.
//
// Readers decode _xHHHH_ sequences in stored strings, so an underscore that
// starts such a sequence is written as _x005F_. Characters that XML 1.0
// cannot carry are written as _xHHHH_.
func EscapeCellText(s string) string {
	if !needsEscape(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 16)
	for i, r := range s {
		switch {
		case r == '_' && isEscapeSequence(s[i+1:]):
			b.WriteString("_x005F_")
		case !isXMLChar(r):
			fmt.Fprintf(&b, "_x%04X_", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StoredLength returns the UTF-16 length of text once escaped for storage.
func StoredLength(s string) int {
	n := 0
	for _, r := range EscapeCellText(s) {
		n += utf16.RuneLen(r)
	}
	return n
}

func needsEscape(s string) bool {
	for i, r := range s {
		if (r == '_' && isEscapeSequence(s[i+1:])) || !isXMLChar(r) {
			return true
		}
	}
	return false
}

// isEscapeSequence reports whether rest begins with "xHHHH_".
func isEscapeSequence(rest string) bool {
	if len(rest) < 6 || rest[0] != 'x' || rest[5] != '_' {
		return false
	}
	for i := 1; i < 5; i++ {
		if !isHex(rest[i]) {
			return false
		}
	}
	return true
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
