package model

import (
	"encoding/json"
	"strings"
)

// Records written by the earlier document store used different keys
// (university/info, repo, flat profile handles, comma separated keywords).
// The decoders below accept both shapes; encoding always uses the current one.

func (r *ResumeRecord) UnmarshalJSON(data []byte) error {
	type plain ResumeRecord
	var aux struct {
		plain
		Keywords json.RawMessage `json:"keywords"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = ResumeRecord(aux.plain)
	r.Keywords = nil
	if len(aux.Keywords) == 0 || string(aux.Keywords) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(aux.Keywords, &list); err == nil {
		r.Keywords = MergeKeywords(list)
		return nil
	}
	var joined string
	if err := json.Unmarshal(aux.Keywords, &joined); err != nil {
		return err
	}
	r.Keywords = MergeKeywords(strings.Split(joined, ","))
	return nil
}

func (b *BasicInfo) UnmarshalJSON(data []byte) error {
	type plain BasicInfo
	var aux struct {
		plain
		GitHub   string `json:"github"`
		LinkedIn string `json:"linkedin"`
		Homepage string `json:"homepage"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = BasicInfo(aux.plain)
	if b.Links.GitHub == "" {
		b.Links.GitHub = aux.GitHub
	}
	if b.Links.LinkedIn == "" {
		b.Links.LinkedIn = aux.LinkedIn
	}
	if b.Links.Homepage == "" {
		b.Links.Homepage = aux.Homepage
	}
	return nil
}

func (e *Education) UnmarshalJSON(data []byte) error {
	type plain Education
	var aux struct {
		plain
		University string   `json:"university"`
		Info       []string `json:"info"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Education(aux.plain)
	if e.Institution == "" {
		e.Institution = aux.University
	}
	if len(e.ExtraInfo) == 0 {
		e.ExtraInfo = aux.Info
	}
	return nil
}

func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var aux struct {
		plain
		Repo string `json:"repo"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Project(aux.plain)
	if p.RepoURL == "" {
		p.RepoURL = aux.Repo
	}
	return nil
}
