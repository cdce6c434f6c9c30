package latex

import (
	"fmt"
	"strings"
)

// URL prepares u for the first argument of \href. hyperref reads that argument
// almost verbatim, so ~ _ & and $ stay as they are. % and # are
// backslash-prefixed; backslashes, braces, ^ and whitespace are
// percent-encoded since they would break the argument.
func URL(u string) string {
	u = strings.TrimSpace(u)
	var b strings.Builder
	b.Grow(len(u))
	for i := 0; i < len(u); i++ {
		c := u[i]
		switch {
		case c == '%' || c == '#':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\\' || c == '{' || c == '}' || c == '^' || c <= ' ' || c == 0x7f:
			fmt.Fprintf(&b, `\%%%02X`, c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
