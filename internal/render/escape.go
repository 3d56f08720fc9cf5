package render

import (
	"strconv"
	"strings"
)

// EscapeSelector escapes a classname for use after "." in a selector,
// following the CSSOM serialize-an-identifier rules.
func EscapeSelector(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == 0:
			b.WriteRune('�')
		case (r >= 0x01 && r <= 0x1f) || r == 0x7f:
			hexEscape(&b, r)
		case i == 0 && r >= '0' && r <= '9':
			hexEscape(&b, r)
		case i == 1 && r >= '0' && r <= '9' && runes[0] == '-':
			hexEscape(&b, r)
		case i == 0 && r == '-' && len(runes) == 1:
			b.WriteString(`\-`)
		case r >= 0x80 || r == '-' || r == '_' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

func hexEscape(b *strings.Builder, r rune) {
	b.WriteByte('\\')
	b.WriteString(strconv.FormatInt(int64(r), 16))
	b.WriteByte(' ')
}
