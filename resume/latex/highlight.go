package latex

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Highlighter escapes text and wraps keyword occurrences in \textbf{}. Matching
// is case-insensitive on whole words and keeps the case found in the text. The
// zero value only escapes.
type Highlighter struct {
	re *regexp.Regexp
}

// NewHighlighter compiles keywords into a Highlighter. Longer keywords win
// when two overlap.
func NewHighlighter(keywords []string) Highlighter {
	words := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			words = append(words, kw)
		}
	}
	if len(words) == 0 {
		return Highlighter{}
	}
	sort.SliceStable(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })

	alts := make([]string, len(words))
	for i, w := range words {
		alts[i] = boundary(w, true) + regexp.QuoteMeta(w) + boundary(w, false)
	}
	return Highlighter{re: regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)}
}

// \b only makes sense next to a word character; "C++" must still match.
func boundary(word string, leading bool) string {
	var r rune
	if leading {
		r, _ = utf8.DecodeRuneInString(word)
	} else {
		r, _ = utf8.DecodeLastRuneInString(word)
	}
	if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return `\b`
	}
	return ""
}

// Text returns raw escaped, with keyword matches in bold.
func (h Highlighter) Text(raw string) string {
	if h.re == nil || raw == "" {
		return Escape(raw)
	}
	matches := h.re.FindAllStringIndex(raw, -1)
	if len(matches) == 0 {
		return Escape(raw)
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(Escape(raw[last:m[0]]))
		b.WriteString(`\textbf{`)
		b.WriteString(Escape(raw[m[0]:m[1]]))
		b.WriteString(`}`)
		last = m[1]
	}
	b.WriteString(Escape(raw[last:]))
	return b.String()
}

// Join highlights each item and joins them with sep. sep is markup and is not
// escaped.
func (h Highlighter) Join(items []string, sep string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		out = append(out, h.Text(it))
	}
	return strings.Join(out, sep)
}
