package templates

import (
	"strings"

	"resume-generator/resume/latex"
	"resume-generator/resume/model"
	"resume-generator/resume/order"
)

// classic is a single column, ATS friendly layout on the article class.
type classic struct{}

// NewClassic returns the Classic template.
func NewClassic() Template { return classic{} }

func (classic) Variant() Variant { return Classic }

func (classic) Description() string {
	return "Classic single column layout on the article class, machine readable"
}

// \pdfgentounicode is pdfTeX only.
func (classic) Engine() string { return "pdflatex" }

func (classic) RenderSource(record model.ResumeRecord, sections []order.Section) string {
	return assemble(classicPreamble, renderers{
		basicInfo:  classicBasicInfo,
		education:  classicEducation,
		experience: classicExperience,
		projects:   classicProjects,
	}, record, sections)
}

const classicPreamble = `\documentclass[letterpaper,11pt]{article}

\usepackage{latexsym}
\usepackage[empty]{fullpage}
\usepackage{titlesec}
\usepackage{marvosym}
\usepackage[usenames,dvipsnames]{color}
\usepackage{verbatim}
\usepackage{enumitem}
\usepackage[hidelinks]{hyperref}
\usepackage{fancyhdr}
\usepackage[english]{babel}
\usepackage{tabularx}
\input{glyphtounicode}

\pagestyle{fancy}
\fancyhf{}
\fancyfoot{}
\renewcommand{\headrulewidth}{0pt}
\renewcommand{\footrulewidth}{0pt}

\addtolength{\oddsidemargin}{-0.5in}
\addtolength{\evensidemargin}{-0.5in}
\addtolength{\textwidth}{1in}
\addtolength{\topmargin}{-0.5in}
\addtolength{\textheight}{1.0in}

\urlstyle{same}
\raggedbottom
\raggedright
\setlength{\tabcolsep}{0in}

\titleformat{\section}{
  \vspace{-4pt}\scshape\raggedright\large
}{}{0em}{}[\color{black}\titlerule \vspace{-5pt}]

\pdfgentounicode=1

\newcommand{\resumeItem}[1]{
  \item\small{
    {#1 \vspace{-2pt}}
  }
}

\newcommand{\resumeSubheading}[4]{
  \vspace{-2pt}\item
    \begin{tabular*}{0.97\textwidth}[t]{l@{\extracolsep{\fill}}r}
      \textbf{#1} & #2 \\
      \textit{\small#3} & \textit{\small #4} \\
    \end{tabular*}\vspace{-7pt}
}

\newcommand{\resumeProjectHeading}[2]{
    \item
    \begin{tabular*}{0.97\textwidth}{l@{\extracolsep{\fill}}r}
      \small#1 & #2 \\
    \end{tabular*}\vspace{-7pt}
}

\renewcommand\labelitemii{$\vcenter{\hbox{\tiny$\bullet$}}$}

\newcommand{\resumeSubHeadingListStart}{\begin{itemize}[leftmargin=0.15in, label={}]}
\newcommand{\resumeSubHeadingListEnd}{\end{itemize}}
\newcommand{\resumeItemListStart}{\begin{itemize}}
\newcommand{\resumeItemListEnd}{\end{itemize}\vspace{-5pt}}

`

func classicBasicInfo(info model.BasicInfo, h latex.Highlighter) (string, string) {
	var contact []string
	if info.Address != "" {
		contact = append(contact, latex.Escape(info.Address))
	}
	if info.Email != "" {
		contact = append(contact, `\href{mailto:`+latex.URL(info.Email)+`}{\underline{`+latex.Escape(info.Email)+`}}`)
	}
	if info.Phone != "" {
		contact = append(contact, latex.Escape(info.Phone))
	}
	for _, l := range []struct{ base, v string }{
		{"https://linkedin.com/in/", info.Links.LinkedIn},
		{"https://github.com/", info.Links.GitHub},
		{"", info.Links.Homepage},
	} {
		if strings.TrimSpace(l.v) == "" {
			continue
		}
		u := profileURL(l.base, l.v)
		contact = append(contact, `\href{`+latex.URL(u)+`}{\underline{`+latex.Escape(displayURL(u))+`}}`)
	}

	var b strings.Builder
	b.WriteString("\\begin{center}\n")
	b.WriteString("    \\textbf{\\Huge \\scshape " + latex.Escape(info.Name) + "} \\\\ \\vspace{1pt}\n")
	b.WriteString("    \\small " + strings.Join(contact, " $|$ ") + "\n")
	b.WriteString("\\end{center}\n\n")

	if strings.TrimSpace(info.Summary) != "" {
		b.WriteString("\\section{Summary}\n")
		b.WriteString("\\resumeSubHeadingListStart\n")
		b.WriteString("\\resumeItem{" + h.Text(info.Summary) + "}\n")
		b.WriteString("\\resumeSubHeadingListEnd\n\n")
	}
	return "", b.String()
}

// classicItems renders bullets, or nothing when there are none; an empty
// itemize does not compile.
func classicItems(items []string, h latex.Highlighter) string {
	if !hasText(items) {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\resumeItemListStart\n")
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		b.WriteString("  \\resumeItem{" + h.Text(it) + "}\n")
	}
	b.WriteString("\\resumeItemListEnd\n")
	return b.String()
}

func classicEducation(items []model.Education, h latex.Highlighter) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\section{Education}\n\\resumeSubHeadingListStart\n")
	for _, ed := range items {
		b.WriteString("\\resumeSubheading\n")
		b.WriteString("  {" + latex.Escape(ed.Institution) + "}{" + latex.Escape(ed.Location) + "}\n")
		b.WriteString("  {" + latex.Escape(ed.Degree) + "}{" + latex.Escape(ed.Duration) + "}\n")
		b.WriteString(classicItems(ed.ExtraInfo, h))
	}
	b.WriteString("\\resumeSubHeadingListEnd\n\n")
	return b.String()
}

// classicExperience lists each position with its own projects as sub-bullets.
func classicExperience(items []model.Experience, h latex.Highlighter) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\section{Experience}\n\\resumeSubHeadingListStart\n")
	for _, exp := range items {
		b.WriteString("\\resumeSubheading\n")
		b.WriteString("  {" + latex.Escape(exp.Title) + "}{" + latex.Escape(exp.Duration) + "}\n")
		b.WriteString("  {" + latex.Escape(exp.Company) + "}{" + latex.Escape(exp.Location) + "}\n")

		var body strings.Builder
		if strings.TrimSpace(exp.Description) != "" {
			body.WriteString("  \\resumeItem{" + h.Text(exp.Description) + "}\n")
		}
		for _, p := range exp.Projects {
			heading := `\textbf{` + latex.Escape(p.Title) + `}`
			if tools := h.Join(p.Tools, ", "); tools != "" {
				heading += " -- " + tools
			}
			body.WriteString("  \\resumeItem{" + heading + "}\n")
			body.WriteString(classicItems(p.Details, h))
		}
		if skills := h.Join(exp.Skills, ", "); skills != "" {
			body.WriteString("  \\resumeItem{\\textit{Skills:} " + skills + "}\n")
		}
		if body.Len() > 0 {
			b.WriteString("\\resumeItemListStart\n")
			b.WriteString(body.String())
			b.WriteString("\\resumeItemListEnd\n")
		}
	}
	b.WriteString("\\resumeSubHeadingListEnd\n\n")
	return b.String()
}

func classicProjects(items []model.Project, h latex.Highlighter) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\section{Projects}\n\\resumeSubHeadingListStart\n")
	for _, p := range items {
		heading := `\textbf{` + latex.Escape(p.Title) + `}`
		if tools := h.Join(p.Tools, ", "); tools != "" {
			heading += ` $|$ \emph{` + tools + `}`
		}
		repo := ""
		if strings.TrimSpace(p.RepoURL) != "" {
			repo = href(p.RepoURL, displayURL(p.RepoURL))
		}
		b.WriteString("\\resumeProjectHeading\n")
		b.WriteString("  {" + heading + "}{" + repo + "}\n")
		b.WriteString(classicItems(p.Description, h))
	}
	b.WriteString("\\resumeSubHeadingListEnd\n\n")
	return b.String()
}
