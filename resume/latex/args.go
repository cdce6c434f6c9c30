package latex

import "strings"

// Args splits s on sep and returns each trimmed, escaped part as a brace group,
// as in \name{First}{Last}. An empty s yields a single empty group.
func Args(s, sep string) string {
	parts := strings.Split(s, sep)
	var b strings.Builder
	for _, p := range parts {
		b.WriteByte('{')
		b.WriteString(Escape(strings.TrimSpace(p)))
		b.WriteByte('}')
	}
	return b.String()
}

// NameArgs renders a person name as {First}{Last}; everything after the first
// word is the last name.
func NameArgs(name string) string {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "{}{}"
	case 1:
		return "{" + Escape(fields[0]) + "}{}"
	default:
		return "{" + Escape(fields[0]) + "}{" + Escape(strings.Join(fields[1:], " ")) + "}"
	}
}
