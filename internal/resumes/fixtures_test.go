package resumes

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"resume-generator/resume/compile"
	"resume-generator/resume/model"
	"resume-generator/resume/service"
	"resume-generator/resume/templates"
)

type fakeCompiler struct {
	calls atomic.Int32
	fail  *compile.CompilationError
	gate  chan struct{}
	// engine, when set, overrides every template's engine.
	engine string

	mu      sync.Mutex
	sources []string
}

func (f *fakeCompiler) Compile(ctx context.Context, job compile.Job) (compile.Artifact, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.sources = append(f.sources, job.Source)
	f.mu.Unlock()
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return compile.Artifact{}, &compile.CompilationError{Reason: compile.ReasonCanceled, Engine: job.Engine, Err: ctx.Err()}
		}
	}
	if f.fail != nil {
		return compile.Artifact{}, f.fail
	}
	return compile.Artifact{
		Data:        []byte("%PDF-1.4 " + job.Engine),
		ContentType: "application/pdf",
		Pages:       1,
		Elapsed:     5 * time.Millisecond,
	}, nil
}

func (f *fakeCompiler) EngineFor(engine string) string {
	if f.engine != "" {
		return f.engine
	}
	return engine
}

func (f *fakeCompiler) lastSource() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sources) == 0 {
		return ""
	}
	return f.sources[len(f.sources)-1]
}

func sampleRecord(name string) model.ResumeRecord {
	return model.ResumeRecord{
		Name: name,
		BasicInfo: model.BasicInfo{
			Name:    "Ada Lovelace",
			Email:   "ada@example.com",
			Summary: "Analyst of engines & numbers",
		},
		Education: []model.Education{{Institution: "Home", Degree: "Mathematics"}},
		Experiences: []model.Experience{{
			Company: "Analytical Engine",
			Title:   "Programmer",
			Projects: []model.ExperienceProject{{
				Title:   "Bernoulli numbers",
				Details: []string{"first published algorithm"},
			}},
		}},
		Projects: []model.Project{{Title: "Notes", Description: []string{"Note G"}}},
	}
}

func newTestService(compiler service.DocumentCompiler) *Service {
	return &Service{
		Repo:     NewMemoryRepo(),
		Pipeline: service.NewPipeline(templates.Default(), compiler),
		Now:      func() time.Time { return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func contains(s, sub string) bool { return strings.Contains(s, sub) }
