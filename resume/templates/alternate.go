package templates

import (
	"strings"

	"resume-generator/resume/latex"
	"resume-generator/resume/model"
	"resume-generator/resume/order"
)

// alternate is a centered header, accent rule layout. Its entry commands
// (\cvsection, \cventry, cvitems) are defined in the preamble so no class file
// has to ship with it.
type alternate struct{}

// NewAlternate returns the Alternate template.
func NewAlternate() Template { return alternate{} }

func (alternate) Variant() Variant { return Alternate }

func (alternate) Description() string {
	return "Centered header with accent section rules and right aligned dates"
}

func (alternate) Engine() string { return "pdflatex" }

func (alternate) RenderSource(record model.ResumeRecord, sections []order.Section) string {
	return assemble(alternatePreamble, renderers{
		basicInfo:  alternateBasicInfo,
		education:  alternateEducation,
		experience: alternateExperience,
		projects:   alternateProjects,
	}, record, sections)
}

const alternatePreamble = `\documentclass[11pt,a4paper]{article}
\usepackage[left=1.4cm,top=.8cm,right=1.4cm,bottom=1.8cm,footskip=.5cm]{geometry}
\usepackage[T1]{fontenc}
\usepackage[utf8]{inputenc}
\usepackage{lmodern}
\usepackage{xcolor}
\usepackage{enumitem}
\usepackage[hidelinks]{hyperref}

\definecolor{accent}{HTML}{262626}
\definecolor{graytext}{HTML}{5D5D5D}
\pagestyle{empty}
\setlength{\parindent}{0pt}

\newcommand{\acvFirstName}{}
\newcommand{\acvLastName}{}
\newcommand{\acvAddress}{}
\newcommand{\acvContacts}{}
\newcommand{\name}[2]{\renewcommand{\acvFirstName}{#1}\renewcommand{\acvLastName}{#2}}
\newcommand{\address}[1]{\renewcommand{\acvAddress}{#1}}
\newcommand{\contacts}[1]{\renewcommand{\acvContacts}{#1}}
\newcommand{\makecvheader}{%
  \begin{center}
    {\fontsize{28pt}{32pt}\selectfont\color{graytext}\acvFirstName\ \textbf{\color{accent}\acvLastName}}\par
    \vspace{4pt}{\small\itshape\color{graytext}\acvAddress}\par
    \vspace{2pt}{\small\color{accent}\acvContacts}
  \end{center}\vspace{2pt}}

\newcommand{\cvsection}[1]{%
  \vspace{6pt}{\Large\bfseries\color{accent}#1}\par\vspace{-2pt}%
  {\color{graytext}\rule{\linewidth}{0.6pt}}\par\vspace{2pt}}
\newcommand{\cventry}[5]{%
  \begin{tabular*}{\linewidth}{@{}l@{\extracolsep{\fill}}r@{}}
    \textbf{#2} & {\small\color{graytext}#4} \\
    {\small\color{graytext}#1} & {\small\itshape\color{graytext}#3} \\
  \end{tabular*}\par
  #5\par\vspace{4pt}}
\newenvironment{cvitems}{\begin{itemize}[leftmargin=2ex,nosep,label={\textbullet}]\small}{\end{itemize}}
\newenvironment{cvparagraph}{\small\color{graytext}}{\par}

`

func alternateBasicInfo(info model.BasicInfo, h latex.Highlighter) (string, string) {
	var contacts []string
	if info.Phone != "" {
		contacts = append(contacts, latex.Escape(info.Phone))
	}
	if info.Email != "" {
		contacts = append(contacts, `\href{mailto:`+latex.URL(info.Email)+`}{`+latex.Escape(info.Email)+`}`)
	}
	for _, l := range []struct{ base, v string }{
		{"", info.Links.Homepage},
		{"https://github.com/", info.Links.GitHub},
		{"https://linkedin.com/in/", info.Links.LinkedIn},
	} {
		if strings.TrimSpace(l.v) == "" {
			continue
		}
		u := profileURL(l.base, l.v)
		contacts = append(contacts, href(u, displayURL(u)))
	}

	var head strings.Builder
	head.WriteString(`\name` + latex.NameArgs(info.Name) + "\n")
	head.WriteString(`\address{` + latex.Escape(info.Address) + "}\n")
	head.WriteString(`\contacts{` + strings.Join(contacts, `\quad\textbar\quad `) + "}\n\n")

	var body strings.Builder
	body.WriteString("\\makecvheader\n\n")
	if strings.TrimSpace(info.Summary) != "" {
		body.WriteString("\\cvsection{Summary}\n")
		body.WriteString("\\begin{cvparagraph}\n" + h.Text(info.Summary) + "\n\\end{cvparagraph}\n\n")
	}
	return head.String(), body.String()
}

func alternateItems(items []string, h latex.Highlighter) string {
	if !hasText(items) {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\begin{cvitems}\n")
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		b.WriteString("\\item " + h.Text(it) + "\n")
	}
	b.WriteString("\\end{cvitems}")
	return b.String()
}

func alternateEntry(org, title, location, date, body string) string {
	return "\\cventry\n  {" + org + "}\n  {" + title + "}\n  {" + location + "}\n  {" + date + "}\n  {" + body + "}\n"
}

func alternateEducation(items []model.Education, h latex.Highlighter) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\cvsection{Education}\n")
	for _, ed := range items {
		b.WriteString(alternateEntry(latex.Escape(ed.Degree), latex.Escape(ed.Institution),
			latex.Escape(ed.Location), latex.Escape(ed.Duration), alternateItems(ed.ExtraInfo, h)))
	}
	b.WriteString("\n")
	return b.String()
}

// alternateExperience lists a position's projects as titled bullets under the
// entry, each with its own details.
func alternateExperience(items []model.Experience, h latex.Highlighter) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\cvsection{Experience}\n")
	for _, exp := range items {
		var body strings.Builder
		if strings.TrimSpace(exp.Description) != "" {
			body.WriteString("\\begin{cvparagraph}\n" + h.Text(exp.Description) + "\n\\end{cvparagraph}\n")
		}
		if len(exp.Projects) > 0 {
			body.WriteString("\\begin{cvitems}\n")
			for _, p := range exp.Projects {
				body.WriteString("\\item \\textbf{" + latex.Escape(p.Title) + "}")
				if tools := h.Join(p.Tools, ", "); tools != "" {
					body.WriteString(" \\hfill {\\color{graytext}" + tools + "}")
				}
				body.WriteString("\n")
				if details := alternateItems(p.Details, h); details != "" {
					body.WriteString(details + "\n")
				}
			}
			body.WriteString("\\end{cvitems}\n")
		}
		if skills := h.Join(exp.Skills, ", "); skills != "" {
			body.WriteString("{\\small\\textit{Skills:} " + skills + "}")
		}
		b.WriteString(alternateEntry(latex.Escape(exp.Title), latex.Escape(exp.Company),
			latex.Escape(exp.Location), latex.Escape(exp.Duration), strings.TrimRight(body.String(), "\n")))
	}
	b.WriteString("\n")
	return b.String()
}

func alternateProjects(items []model.Project, h latex.Highlighter) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\cvsection{Projects}\n")
	for _, p := range items {
		repo := ""
		if strings.TrimSpace(p.RepoURL) != "" {
			repo = href(p.RepoURL, lastSegment(p.RepoURL))
		}
		b.WriteString(alternateEntry(h.Join(p.Tools, ", "), latex.Escape(p.Title), repo, "",
			alternateItems(p.Description, h)))
	}
	b.WriteString("\n")
	return b.String()
}
