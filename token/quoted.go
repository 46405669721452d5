package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Quote renders s as a double quoted string the way the engine writes it:
// only backslash and double quote are escaped, newlines are kept verbatim.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\', '"':
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// Unquote decodes a double quoted string including its quotes.
func Unquote(q string) (string, error) {
	if len(q) < 2 || q[0] != '"' || q[len(q)-1] != '"' {
		return "", fmt.Errorf("%w: not a quoted string", ErrUnterminated)
	}
	body := q[1 : len(q)-1]
	if strings.IndexByte(body, '\\') == -1 {
		return body, nil
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i == len(body) {
			return "", ErrBadEscape
		}
		switch body[i] {
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
		case 'u':
			if i+5 > len(body) {
				return "", ErrBadUnicode
			}
			r, err := strconv.ParseUint(body[i+1:i+5], 16, 32)
			if err != nil {
				return "", fmt.Errorf("%w: %w", ErrBadUnicode, err)
			}
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], rune(r))
			b.Write(buf[:n])
			i += 4
		default:
			// \" \\ and anything else stand for themselves
			b.WriteByte(body[i])
		}
	}
	return b.String(), nil
}

// QuotedToString is Unquote for input already validated by the tokenizer.
func QuotedToString(d []byte) string {
	s, err := Unquote(string(d))
	if err != nil {
		return string(d)
	}
	return s
}
