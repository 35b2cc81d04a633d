package tsparse

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// unquote returns the value of a single or double quoted string literal.
// Escapes follow ECMAScript; an unknown escape stands for the escaped
// character itself.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	q := raw[0]
	if (q != '"' && q != '\'') || raw[len(raw)-1] != q {
		return raw
	}
	s := raw[1 : len(raw)-1]
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\r':
			// line continuation, \r\n counts as one terminator
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case '\n':
		case 'x':
			if r, ok := hexRune(s, i+1, 2); ok {
				b.WriteRune(r)
				i += 2
			} else {
				b.WriteByte(e)
			}
		case 'u':
			if i+1 < len(s) && s[i+1] == '{' {
				end := strings.IndexByte(s[i+1:], '}')
				if end > 1 {
					if r, ok := hexRune(s, i+2, end-1); ok {
						b.WriteRune(r)
						i += end + 1
						continue
					}
				}
				b.WriteByte(e)
				continue
			}
			if r, ok := hexRune(s, i+1, 4); ok {
				i += 4
				// surrogate pair
				if r >= 0xD800 && r < 0xDC00 && i+6 < len(s) && s[i+1] == '\\' && s[i+2] == 'u' {
					if lo, ok := hexRune(s, i+3, 4); ok && lo >= 0xDC00 && lo < 0xE000 {
						r = (r-0xD800)<<10 + (lo - 0xDC00) + 0x10000
						i += 6
					}
				}
				b.WriteRune(r)
			} else {
				b.WriteByte(e)
			}
		default:
			// \' \" \\ and any other escaped character
			r, size := utf8.DecodeRuneInString(s[i:])
			b.WriteRune(r)
			i += size - 1
		}
	}
	return b.String()
}

func hexRune(s string, start, n int) (rune, bool) {
	if start+n > len(s) || n <= 0 || n > 6 {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, false
	}
	return rune(v), true
}
