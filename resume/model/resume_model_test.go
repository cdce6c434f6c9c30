package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestUnmarshalAcceptsLegacyKeys(t *testing.T) {
	raw := `{
		"name": "legacy",
		"basic_info": {"name": "Lin", "github": "lin", "linkedin": "lin-in", "homepage": "https://lin.dev"},
		"education": [{"university": "MIT", "info": ["GPA 4.0"]}],
		"projects": [{"title": "p", "repo": "https://github.com/lin/p"}],
		"keywords": "go, sql ,,Go"
	}`
	var got ResumeRecord
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := ResumeRecord{
		Name: "legacy",
		BasicInfo: BasicInfo{
			Name:  "Lin",
			Links: Links{GitHub: "lin", LinkedIn: "lin-in", Homepage: "https://lin.dev"},
		},
		Education: []Education{{Institution: "MIT", ExtraInfo: []string{"GPA 4.0"}}},
		Projects:  []Project{{Title: "p", RepoURL: "https://github.com/lin/p"}},
		Keywords:  []string{"go", "sql"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("legacy decode mismatch (-want +got):\n%s", diff)
	}
}

func TestCurrentKeysWinOverLegacy(t *testing.T) {
	raw := `{"education": [{"institution": "Stanford", "university": "MIT"}], "keywords": ["a"]}`
	var got ResumeRecord
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Education[0].Institution != "Stanford" {
		t.Fatalf("expected current key to win, got %q", got.Education[0].Institution)
	}
	if diff := cmp.Diff([]string{"a"}, got.Keywords); diff != "" {
		t.Fatalf("keywords mismatch: %s", diff)
	}
}

func TestYAMLDecode(t *testing.T) {
	raw := `
name: yaml-record
basic_info:
  name: Yam L
  links:
    github: yam
experiences:
  - company: Acme
    title: Dev
    projects:
      - title: Inner
        tools: [Go]
        details: [did things]
`
	var got ResumeRecord
	if err := yaml.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if got.BasicInfo.Links.GitHub != "yam" || got.Experiences[0].Projects[0].Title != "Inner" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rec     ResumeRecord
		wantErr bool
	}{
		{name: "ok", rec: ResumeRecord{Name: "a", BasicInfo: BasicInfo{Name: "A"}}},
		{name: "missing name", rec: ResumeRecord{BasicInfo: BasicInfo{Name: "A"}}, wantErr: true},
		{name: "path name", rec: ResumeRecord{Name: "a/b", BasicInfo: BasicInfo{Name: "A"}}, wantErr: true},
		{name: "missing person", rec: ResumeRecord{Name: "a"}, wantErr: true},
		{name: "blank experience", rec: ResumeRecord{Name: "a", BasicInfo: BasicInfo{Name: "A"}, Experiences: []Experience{{}}}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithKeywordsDoesNotMutate(t *testing.T) {
	rec := ResumeRecord{Keywords: []string{"Go"}}
	out := rec.WithKeywords("go", "SQL", " ")
	if diff := cmp.Diff([]string{"Go", "SQL"}, out.Keywords); diff != "" {
		t.Fatalf("merged keywords mismatch: %s", diff)
	}
	if len(rec.Keywords) != 1 {
		t.Fatalf("original record mutated")
	}
}
