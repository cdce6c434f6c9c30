// Package latex turns free text into LaTeX-safe text.
package latex

import "strings"

// Named replacements for characters that cannot simply be backslash-prefixed.
const (
	Backslash  = `\textbackslash{}`
	Tilde      = `\textasciitilde{}`
	Circumflex = `\textasciicircum{}`
)

var namedForms = []string{Backslash, Tilde, Circumflex}

// Reserved lists every character Escape neutralizes.
const Reserved = `\&%$#_{}~^`

const prefixable = `&%$#_{}`

// Escape rewrites s so that none of the Reserved characters keep their LaTeX
// meaning. The input is scanned once left to right. Escape sequences already in
// s (a backslash before one of &%$#_{} or one of the named forms) are copied
// unchanged, so Escape(Escape(s)) == Escape(s).
func Escape(s string) string {
	if !strings.ContainsAny(s, Reserved) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			if n := escapedLen(s[i:]); n > 0 {
				b.WriteString(s[i : i+n])
				i += n - 1
				continue
			}
			b.WriteString(Backslash)
		case c == '~':
			b.WriteString(Tilde)
		case c == '^':
			b.WriteString(Circumflex)
		case strings.IndexByte(prefixable, c) >= 0:
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// escapedLen reports the length of the escape sequence s starts with, or 0.
func escapedLen(s string) int {
	if len(s) >= 2 && strings.IndexByte(prefixable, s[1]) >= 0 {
		return 2
	}
	for _, form := range namedForms {
		if strings.HasPrefix(s, form) {
			return len(form)
		}
	}
	return 0
}

// Unescaped reports the byte offset of the first reserved character in s that is
// not part of an escape sequence, or -1 when s is safe.
func Unescaped(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' {
			n := escapedLen(s[i:])
			if n == 0 {
				return i
			}
			i += n - 1
			continue
		}
		if strings.IndexByte(Reserved, c) >= 0 {
			return i
		}
	}
	return -1
}
