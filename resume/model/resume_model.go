package model

import (
	"errors"
	"fmt"
	"strings"
)

// ResumeRecord is the structured resume a template renders. Sequences keep the
// author's presentation order.
type ResumeRecord struct {
	Name        string       `json:"name" yaml:"name"`
	BasicInfo   BasicInfo    `json:"basic_info" yaml:"basic_info"`
	Education   []Education  `json:"education" yaml:"education"`
	Experiences []Experience `json:"experiences" yaml:"experiences"`
	Projects    []Project    `json:"projects" yaml:"projects"`
	Keywords    []string     `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// BasicInfo holds identity and contact details. Every field is optional.
type BasicInfo struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	Email   string `json:"email" yaml:"email"`
	Phone   string `json:"phone" yaml:"phone"`
	Summary string `json:"summary" yaml:"summary"`
	Links   Links  `json:"links" yaml:"links"`
}

// Links are profile handles or URLs shown in the header.
type Links struct {
	GitHub   string `json:"github,omitempty" yaml:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Homepage string `json:"homepage,omitempty" yaml:"homepage,omitempty"`
}

// Education is one degree or school entry.
type Education struct {
	Institution string   `json:"institution" yaml:"institution"`
	Duration    string   `json:"duration" yaml:"duration"`
	Location    string   `json:"location" yaml:"location"`
	Degree      string   `json:"degree" yaml:"degree"`
	ExtraInfo   []string `json:"extra_info" yaml:"extra_info"`
}

// Experience is one position. Projects lists the work done in that position and
// is unrelated to the top-level ResumeRecord.Projects.
type Experience struct {
	Company     string              `json:"company" yaml:"company"`
	Duration    string              `json:"duration" yaml:"duration"`
	Location    string              `json:"location" yaml:"location"`
	Title       string              `json:"title" yaml:"title"`
	Skills      []string            `json:"skills" yaml:"skills"`
	Description string              `json:"description" yaml:"description"`
	Tags        []string            `json:"tags" yaml:"tags"`
	Projects    []ExperienceProject `json:"projects" yaml:"projects"`
}

// ExperienceProject is a piece of work nested under an Experience.
type ExperienceProject struct {
	Title   string   `json:"title" yaml:"title"`
	Tools   []string `json:"tools" yaml:"tools"`
	Details []string `json:"details" yaml:"details"`
}

// Project is a standalone side project.
type Project struct {
	Title       string   `json:"title" yaml:"title"`
	Description []string `json:"description" yaml:"description"`
	Tools       []string `json:"tools" yaml:"tools"`
	RepoURL     string   `json:"repo_url" yaml:"repo_url"`
}

var (
	errNameRequired        = errors.New("name is required")
	errBasicNameRequired   = errors.New("basic_info.name is required")
	errNameInvalidSegments = errors.New("name must not contain path separators")
)

// Validate checks the fields a stored record needs. Rendering itself never
// requires them.
func (r ResumeRecord) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errNameRequired
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return errNameInvalidSegments
	}
	if strings.TrimSpace(r.BasicInfo.Name) == "" {
		return errBasicNameRequired
	}
	for i, exp := range r.Experiences {
		if strings.TrimSpace(exp.Company) == "" && strings.TrimSpace(exp.Title) == "" {
			return fmt.Errorf("experiences[%d] needs a company or a title", i)
		}
	}
	return nil
}

// WithKeywords returns a copy whose Keywords are the record's own followed by
// extra, blanks and case-insensitive duplicates removed.
func (r ResumeRecord) WithKeywords(extra ...string) ResumeRecord {
	out := r
	out.Keywords = MergeKeywords(r.Keywords, extra)
	return out
}

// MergeKeywords joins keyword lists keeping the first spelling of each word.
func MergeKeywords(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, kw := range list {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			key := strings.ToLower(kw)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}
