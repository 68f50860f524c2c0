package scanner

import (
	"strings"

	"github.com/andrewgrz/gears-lang/lang/token"
)

var simpleEscapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'\\': '\\',
	'"':  '"',
}

// shortString scans a double-quoted string literal. The opening quote has
// already been consumed by the caller.
func (s *Scanner) shortString(start token.Pos) (lit, val string) {
	var sb strings.Builder
	var raw strings.Builder
	raw.WriteByte('"')

	for {
		cur := s.cur
		if cur == '\n' || cur == -1 {
			s.error(start, "string literal not terminated")
			break
		}
		s.advance()
		if cur == '"' {
			raw.WriteByte('"')
			break
		}
		if cur == '\\' {
			raw.WriteRune(cur)
			esc := s.cur
			raw.WriteRune(esc)
			if r, ok := simpleEscapes[esc]; ok {
				sb.WriteRune(r)
				s.advance()
				continue
			}
			s.error(start, "unknown escape sequence")
			continue
		}
		raw.WriteRune(cur)
		sb.WriteRune(cur)
	}
	return raw.String(), sb.String()
}
