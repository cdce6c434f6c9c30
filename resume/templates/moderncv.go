package templates

import (
	"strings"

	"resume-generator/resume/latex"
	"resume-generator/resume/model"
	"resume-generator/resume/order"
)

// moderncv uses the moderncv class in the banking style.
type moderncv struct{}

// NewModernCV returns the ModernCV template.
func NewModernCV() Template { return moderncv{} }

func (moderncv) Variant() Variant { return ModernCV }

func (moderncv) Description() string {
	return "moderncv class, banking style with blue accents"
}

func (moderncv) Engine() string { return "xelatex" }

func (moderncv) RenderSource(record model.ResumeRecord, sections []order.Section) string {
	return assemble(moderncvPreamble, renderers{
		basicInfo:  moderncvBasicInfo,
		education:  moderncvEducation,
		experience: moderncvExperience,
		projects:   moderncvProjects,
	}, record, sections)
}

const moderncvPreamble = `\documentclass[10pt,a4paper,sans]{moderncv}
\moderncvstyle{banking}
\moderncvcolor{blue}
\usepackage[scale=0.94]{geometry}
\usepackage{enumitem}
\setlist[itemize]{leftmargin=*,nosep}

`

func moderncvBasicInfo(info model.BasicInfo, h latex.Highlighter) (string, string) {
	var head strings.Builder
	head.WriteString(`\name` + latex.NameArgs(info.Name) + "\n")
	if addr := strings.TrimSpace(info.Address); addr != "" {
		head.WriteString(`\address` + addressArgs(addr) + "\n")
	}
	if info.Phone != "" {
		head.WriteString(`\phone[mobile]{` + latex.Escape(info.Phone) + "}\n")
	}
	if info.Email != "" {
		head.WriteString(`\email{` + latex.Escape(info.Email) + "}\n")
	}
	if info.Links.Homepage != "" {
		head.WriteString(`\homepage{` + latex.Escape(displayURL(info.Links.Homepage)) + "}\n")
	}
	if info.Links.GitHub != "" {
		head.WriteString(`\social[github]{` + latex.Escape(lastSegment(info.Links.GitHub)) + "}\n")
	}
	if info.Links.LinkedIn != "" {
		head.WriteString(`\social[linkedin]{` + latex.Escape(lastSegment(info.Links.LinkedIn)) + "}\n")
	}
	head.WriteString("\n")

	var body strings.Builder
	body.WriteString("\\makecvtitle\n\n")
	if strings.TrimSpace(info.Summary) != "" {
		body.WriteString("\\section{Summary}\n")
		body.WriteString("\\cvitem{}{" + h.Text(info.Summary) + "}\n\n")
	}
	return head.String(), body.String()
}

// addressArgs fills the three \address groups from a comma separated address;
// anything past the second comma stays in the last group.
func addressArgs(addr string) string {
	parts := strings.SplitN(addr, ",", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	var b strings.Builder
	for _, p := range parts {
		b.WriteString("{" + latex.Escape(strings.TrimSpace(p)) + "}")
	}
	return b.String()
}

func moderncvItems(items []string, h latex.Highlighter) string {
	if !hasText(items) {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\begin{itemize}\n")
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		b.WriteString("\\item " + h.Text(it) + "\n")
	}
	b.WriteString("\\end{itemize}")
	return b.String()
}

func moderncvEducation(items []model.Education, h latex.Highlighter) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\section{Education}\n")
	for _, ed := range items {
		b.WriteString("\\cventry{" + latex.Escape(ed.Duration) + "}{" + latex.Escape(ed.Degree) + "}{" +
			latex.Escape(ed.Institution) + "}{" + latex.Escape(ed.Location) + "}{}{" +
			moderncvItems(ed.ExtraInfo, h) + "}\n")
	}
	b.WriteString("\n")
	return b.String()
}

// moderncvExperience renders each position's projects inside its \cventry
// description.
func moderncvExperience(items []model.Experience, h latex.Highlighter) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\section{Experience}\n")
	for _, exp := range items {
		var desc strings.Builder
		if strings.TrimSpace(exp.Description) != "" {
			desc.WriteString(h.Text(exp.Description) + "\n")
		}
		if len(exp.Projects) > 0 {
			desc.WriteString("\\begin{itemize}\n")
			for _, p := range exp.Projects {
				desc.WriteString("\\item \\textbf{" + latex.Escape(p.Title) + "}")
				if tools := h.Join(p.Tools, ", "); tools != "" {
					desc.WriteString(" \\hfill \\emph{" + tools + "}")
				}
				desc.WriteString("\n")
				if details := moderncvItems(p.Details, h); details != "" {
					desc.WriteString(details + "\n")
				}
			}
			desc.WriteString("\\end{itemize}\n")
		}
		if skills := h.Join(exp.Skills, ", "); skills != "" {
			desc.WriteString("\\emph{Skills:} " + skills)
		}
		b.WriteString("\\cventry{" + latex.Escape(exp.Duration) + "}{" + latex.Escape(exp.Title) + "}{\\textbf{" +
			latex.Escape(exp.Company) + "}}{" + latex.Escape(exp.Location) + "}{}{" +
			strings.TrimRight(desc.String(), "\n") + "}\n")
	}
	b.WriteString("\n")
	return b.String()
}

func moderncvProjects(items []model.Project, h latex.Highlighter) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\section{Projects}\n")
	for _, p := range items {
		repo := ""
		if strings.TrimSpace(p.RepoURL) != "" {
			repo = href(p.RepoURL, lastSegment(p.RepoURL))
		}
		desc := moderncvItems(p.Description, h)
		if tools := h.Join(p.Tools, ", "); tools != "" {
			if desc != "" {
				desc += "\n"
			}
			desc += "Tools/Libraries: " + tools
		}
		b.WriteString("\\cventry{}{" + latex.Escape(p.Title) + "}{" + repo + "}{}{}{" + desc + "}\n")
	}
	b.WriteString("\n")
	return b.String()
}
