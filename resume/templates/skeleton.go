package templates

import (
	"strings"

	"resume-generator/resume/latex"
	"resume-generator/resume/model"
	"resume-generator/resume/order"
)

// renderers is the section renderer set a variant binds to its skeleton.
// basicInfo returns declarations that belong before \begin{document} and the
// visible header that follows it.
type renderers struct {
	basicInfo  func(info model.BasicInfo, h latex.Highlighter) (head, body string)
	education  func(items []model.Education, h latex.Highlighter) string
	experience func(items []model.Experience, h latex.Highlighter) string
	projects   func(items []model.Project, h latex.Highlighter) string
}

// assemble emits preamble, basic info, the ordered sections and the closer.
func assemble(preamble string, set renderers, record model.ResumeRecord, sections []order.Section) string {
	h := latex.NewHighlighter(record.Keywords)
	head, body := set.basicInfo(record.BasicInfo, h)

	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString(head)
	b.WriteString("\\begin{document}\n")
	b.WriteString(body)
	for _, s := range sections {
		switch s {
		case order.Education:
			b.WriteString(set.education(record.Education, h))
		case order.Experience:
			b.WriteString(set.experience(record.Experiences, h))
		case order.Projects:
			b.WriteString(set.projects(record.Projects, h))
		}
	}
	b.WriteString("\\end{document}\n")
	return b.String()
}

func hasText(items []string) bool {
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			return true
		}
	}
	return false
}

// profileURL turns a handle into a URL under base; full URLs pass through.
func profileURL(base, v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v
	}
	return base + strings.TrimPrefix(v, "@")
}

// displayURL drops the scheme and trailing slash for printing.
func displayURL(u string) string {
	u = strings.TrimPrefix(strings.TrimPrefix(u, "https://"), "http://")
	return strings.TrimSuffix(u, "/")
}

// lastSegment returns the final path element of a URL, for short repo labels.
func lastSegment(u string) string {
	u = strings.TrimSuffix(strings.TrimSpace(u), "/")
	if i := strings.LastIndex(u, "/"); i >= 0 && i < len(u)-1 {
		return u[i+1:]
	}
	return u
}

// href renders a link. Only the label is escaped as text.
func href(url, label string) string {
	return `\href{` + latex.URL(url) + `}{` + latex.Escape(label) + `}`
}
