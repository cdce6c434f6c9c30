package service_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"resume-generator/resume/compile"
	"resume-generator/resume/compile/compiletest"
	"resume-generator/resume/model"
	"resume-generator/resume/order"
	"resume-generator/resume/service"
	"resume-generator/resume/templates"
)

func TestMain(m *testing.M) {
	compiletest.RunIfEngine()
	os.Exit(m.Run())
}

func record(summary string) model.ResumeRecord {
	return model.ResumeRecord{
		Name: "r",
		BasicInfo: model.BasicInfo{
			Name:    "Grace Hopper",
			Email:   "grace@example.com",
			Summary: summary,
		},
		Education: []model.Education{{Institution: "Yale", Degree: "PhD"}},
		Experiences: []model.Experience{{
			Company:  "Navy",
			Title:    "Rear Admiral",
			Projects: []model.ExperienceProject{{Title: "COBOL", Details: []string{"compiler work"}}},
		}},
		Projects: []model.Project{{Title: "Nanosecond wire", Description: []string{"11.8 inches"}}},
	}
}

func TestGetSourceMatchesTemplate(t *testing.T) {
	p := service.NewPipeline(templates.Default(), nil)
	rec := record("MARKERSRC summary")

	got, err := p.GetSource(rec, "moderncv", "ewp")
	if err != nil {
		t.Fatalf("GetSource: %v", err)
	}
	sections, _ := order.Resolve("ewp")
	want := templates.NewModernCV().RenderSource(rec, sections)
	if got != want {
		t.Fatalf("GetSource differs from direct render")
	}
}

func TestGetSourceValidation(t *testing.T) {
	p := service.NewPipeline(nil, nil)
	rec := record("x")

	_, err := p.GetSource(rec, "classic", "pwx")
	var invalid *order.InvalidOrderError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidOrderError, got %v", err)
	}

	_, err = p.GetSource(rec, "nope", "pwx")
	var unknown *templates.UnknownVariantError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected variant to be checked first, got %v", err)
	}
}

func TestGetSourceHighlightsRequestKeywords(t *testing.T) {
	p := service.NewPipeline(nil, nil)
	src, err := p.GetSource(record("Built compilers"), "classic", "pwe", "compilers")
	if err != nil {
		t.Fatalf("GetSource: %v", err)
	}
	if !strings.Contains(src, `\textbf{compilers}`) {
		t.Fatalf("expected request keyword highlighted")
	}
}

func TestGetDocumentEscapesBeforeCompiling(t *testing.T) {
	c, root := compiletest.Compiler(t, compiletest.ModeOK, 10*time.Second)
	p := service.NewPipeline(nil, c)

	for _, variant := range []string{"classic", "moderncv", "alternate"} {
		doc, err := p.GetDocument(context.Background(), record("MARKERPCT grew revenue 100% raw"), variant, "pwe")
		if err != nil {
			t.Fatalf("%s: GetDocument: %v", variant, err)
		}
		if doc.ContentType != "application/pdf" || doc.Pages != 1 || len(doc.PDF) == 0 {
			t.Fatalf("%s: unexpected document %+v", variant, doc.ContentType)
		}
		if !strings.Contains(doc.Source, `100\% raw`) {
			t.Fatalf("%s: source missing escaped percent", variant)
		}
	}
	compiletest.AssertEmpty(t, root)
}

// rawTemplate skips escaping and can emit a broken skeleton.
type rawTemplate struct {
	broken bool
}

func (rawTemplate) Variant() templates.Variant { return templates.Classic }
func (rawTemplate) Description() string        { return "raw" }
func (rawTemplate) Engine() string             { return "pdflatex" }
func (r rawTemplate) RenderSource(rec model.ResumeRecord, _ []order.Section) string {
	var b strings.Builder
	b.WriteString("\\documentclass{article}\n\\begin{document}\n")
	if r.broken {
		b.WriteString(compiletest.UndefinedMacro + "\n")
	}
	b.WriteString(rec.BasicInfo.Summary + "\n\\end{document}\n")
	return b.String()
}

func TestGetDocumentReportsCompilationErrors(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    rawTemplate
		summary string
	}{
		{name: "unescaped text", tmpl: rawTemplate{}, summary: "MARKERRAW grew 100% raw"},
		{name: "broken skeleton", tmpl: rawTemplate{broken: true}, summary: "MARKERBROKEN fine"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, root := compiletest.Compiler(t, compiletest.ModeOK, 10*time.Second)
			p := service.NewPipeline(templates.NewRegistry(tt.tmpl), c)

			_, err := p.GetDocument(context.Background(), record(tt.summary), "classic", "pwe")
			var ce *compile.CompilationError
			if !errors.As(err, &ce) {
				t.Fatalf("expected CompilationError, got %v", err)
			}
			if strings.TrimSpace(ce.Output) == "" {
				t.Fatalf("expected diagnostic output")
			}
			compiletest.AssertEmpty(t, root)
		})
	}
}

func TestGetDocumentConcurrentCallsKeepTheirOwnOutput(t *testing.T) {
	c, root := compiletest.Compiler(t, compiletest.ModeOK, 20*time.Second)
	p := service.NewPipeline(nil, c)

	markers := []string{"MARKERALPHA", "MARKERBETA"}
	docs := make([]service.Document, len(markers))
	errs := make([]error, len(markers))
	var wg sync.WaitGroup
	for i, m := range markers {
		wg.Add(1)
		go func(i int, m string) {
			defer wg.Done()
			docs[i], errs[i] = p.GetDocument(context.Background(), record(m+" summary"), "classic", "wep")
		}(i, m)
	}
	wg.Wait()

	for i, m := range markers {
		if errs[i] != nil {
			t.Fatalf("%s: %v", m, errs[i])
		}
		other := markers[1-i]
		if !bytes.Contains(docs[i].PDF, []byte(m)) {
			t.Fatalf("%s missing from its own document", m)
		}
		if bytes.Contains(docs[i].PDF, []byte(other)) {
			t.Fatalf("%s document contains %s", m, other)
		}
	}
	compiletest.AssertEmpty(t, root)
}

func TestGetDocumentWithoutCompiler(t *testing.T) {
	p := service.NewPipeline(nil, nil)
	_, err := p.GetDocument(context.Background(), record("x"), "classic", "pwe")
	var ce *compile.CompilationError
	if !errors.As(err, &ce) || ce.Reason != compile.ReasonCompilerMissing {
		t.Fatalf("expected compiler_not_found, got %v", err)
	}
}

func TestGetDocumentValidatesBeforeCompiling(t *testing.T) {
	c, root := compiletest.Compiler(t, compiletest.ModeFail, 10*time.Second)
	p := service.NewPipeline(nil, c)
	_, err := p.GetDocument(context.Background(), record("x"), "classic", "pp")
	var invalid *order.InvalidOrderError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidOrderError, got %v", err)
	}
	compiletest.AssertEmpty(t, root)
}

type overridingCompiler struct{ engine string }

func (overridingCompiler) Compile(context.Context, compile.Job) (compile.Artifact, error) {
	return compile.Artifact{}, nil
}

func (c overridingCompiler) EngineFor(string) string { return c.engine }

func TestEngineForReportsCompilerOverride(t *testing.T) {
	t.Parallel()
	tmpl, err := templates.Default().Lookup("moderncv")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got := service.NewPipeline(nil, nil).EngineFor(tmpl); got != tmpl.Engine() {
		t.Fatalf("without compiler: got %q, want %q", got, tmpl.Engine())
	}
	if got := service.NewPipeline(nil, overridingCompiler{engine: "lualatex"}).EngineFor(tmpl); got != "lualatex" {
		t.Fatalf("with override: got %q", got)
	}
}
