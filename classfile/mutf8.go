package classfile

import (
	"strings"
	"unicode"
	"unicode/utf16"
)

// decodeModifiedUtf8 decodes the modified UTF-8 of CONSTANT_Utf8 entries:
// NUL is encoded in two bytes and supplementary characters as a surrogate
// pair of three-byte sequences.
func decodeModifiedUtf8(b []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == 0 || c >= 0xF0:
			return "", malformed("utf8 constant", "invalid byte 0x%02X at %d", c, i)
		case c&0x80 == 0:
			sb.WriteByte(c)
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) {
				return "", malformed("utf8 constant", "truncated sequence at %d", i)
			}
			sb.WriteRune(rune(c&0x1F)<<6 | rune(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(b) {
				return "", malformed("utf8 constant", "truncated sequence at %d", i)
			}
			r := decode3(b[i:])
			i += 3
			if utf16.IsSurrogate(r) && i+2 < len(b) && b[i]&0xF0 == 0xE0 {
				if pair := utf16.DecodeRune(r, decode3(b[i:])); pair != unicode.ReplacementChar {
					sb.WriteRune(pair)
					i += 3
					continue
				}
			}
			sb.WriteRune(r)
		default:
			return "", malformed("utf8 constant", "invalid byte 0x%02X at %d", c, i)
		}
	}
	return sb.String(), nil
}

func decode3(b []byte) rune {
	return rune(b[0]&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F)
}
