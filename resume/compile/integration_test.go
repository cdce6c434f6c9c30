package compile_test

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"

	"resume-generator/resume/compile"
	"resume-generator/resume/model"
	"resume-generator/resume/order"
	"resume-generator/resume/templates"
)

// TestCompileWithInstalledEngines runs the real engines when they are on PATH.
func TestCompileWithInstalledEngines(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}
	record := model.ResumeRecord{
		Name: "integration",
		BasicInfo: model.BasicInfo{
			Name:    "Ada Lovelace",
			Email:   "ada@example.com",
			Summary: "Integration summary with 100% & $ # _ { } ~ ^ \\ characters",
		},
		Experiences: []model.Experience{{
			Company:  "Analytical Engines",
			Title:    "Programmer",
			Projects: []model.ExperienceProject{{Title: "Bernoulli", Details: []string{"first program"}}},
		}},
	}
	sections, _ := order.Resolve("wep")
	for _, tmpl := range []templates.Template{templates.NewClassic(), templates.NewModernCV(), templates.NewAlternate()} {
		tmpl := tmpl
		t.Run(string(tmpl.Variant()), func(t *testing.T) {
			if _, err := exec.LookPath(tmpl.Engine()); err != nil {
				t.Skipf("%s not installed", tmpl.Engine())
			}
			c := compile.New(compile.Options{Timeout: 2 * time.Minute, TempDir: t.TempDir()})
			art, err := c.Compile(context.Background(), compile.Job{
				Source:  tmpl.RenderSource(record, sections),
				Engine:  tmpl.Engine(),
				Variant: string(tmpl.Variant()),
			})
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			r, err := pdf.NewReader(bytes.NewReader(art.Data), int64(len(art.Data)))
			if err != nil {
				t.Fatalf("read pdf: %v", err)
			}
			plain, err := r.GetPlainText()
			if err != nil {
				t.Fatalf("extract text: %v", err)
			}
			var buf bytes.Buffer
			if _, err := io.Copy(&buf, plain); err != nil {
				t.Fatalf("copy text: %v", err)
			}
			if !strings.Contains(buf.String(), "Bernoulli") {
				t.Fatalf("expected nested project in output text")
			}
		})
	}
}
