// Package service composes order resolution, template rendering and
// compilation into the two operations callers use.
package service

import (
	"context"
	"time"

	"resume-generator/resume/compile"
	"resume-generator/resume/model"
	"resume-generator/resume/order"
	"resume-generator/resume/templates"
)

// DocumentCompiler turns LaTeX source into a PDF. *compile.Compiler is the
// production implementation.
type DocumentCompiler interface {
	Compile(ctx context.Context, job compile.Job) (compile.Artifact, error)
}

// Document is the rendered source and, in document mode, the compiled PDF.
type Document struct {
	Variant     templates.Variant
	Order       string
	Source      string
	PDF         []byte
	ContentType string
	Pages       int
	Elapsed     time.Duration
}

// Pipeline is stateless; one value serves concurrent callers.
type Pipeline struct {
	templates *templates.Registry
	compiler  DocumentCompiler
}

// NewPipeline wires a pipeline. compiler may be nil when only source is needed.
func NewPipeline(registry *templates.Registry, compiler DocumentCompiler) *Pipeline {
	if registry == nil {
		registry = templates.Default()
	}
	return &Pipeline{templates: registry, compiler: compiler}
}

// Templates returns the registry the pipeline renders with.
func (p *Pipeline) Templates() *templates.Registry { return p.templates }

// EngineFor returns the executable that compiles tmpl. Compilers that
// override the template's engine report the override.
func (p *Pipeline) EngineFor(tmpl templates.Template) string {
	if r, ok := p.compiler.(interface{ EngineFor(string) string }); ok {
		return r.EngineFor(tmpl.Engine())
	}
	return tmpl.Engine()
}

// Prepare validates a request without rendering: the variant first, then the
// order directive. Errors are *templates.UnknownVariantError or
// *order.InvalidOrderError.
func (p *Pipeline) Prepare(variant, directive string) (templates.Template, []order.Section, error) {
	tmpl, err := p.templates.Lookup(variant)
	if err != nil {
		return nil, nil, err
	}
	sections, err := order.Resolve(directive)
	if err != nil {
		return nil, nil, err
	}
	return tmpl, sections, nil
}

// GetSource renders record with the named variant and section order. Extra
// keywords are highlighted along with the record's own.
func (p *Pipeline) GetSource(record model.ResumeRecord, variant, directive string, keywords ...string) (string, error) {
	tmpl, sections, err := p.Prepare(variant, directive)
	if err != nil {
		return "", err
	}
	return tmpl.RenderSource(record.WithKeywords(keywords...), sections), nil
}

// GetDocument renders and compiles record. Besides the GetSource errors it
// returns *compile.CompilationError.
func (p *Pipeline) GetDocument(ctx context.Context, record model.ResumeRecord, variant, directive string, keywords ...string) (Document, error) {
	tmpl, sections, err := p.Prepare(variant, directive)
	if err != nil {
		return Document{}, err
	}
	if p.compiler == nil {
		return Document{}, &compile.CompilationError{Reason: compile.ReasonCompilerMissing, Output: "no compiler configured"}
	}
	src := tmpl.RenderSource(record.WithKeywords(keywords...), sections)
	art, err := p.compiler.Compile(ctx, compile.Job{
		Source:  src,
		Engine:  tmpl.Engine(),
		Variant: string(tmpl.Variant()),
	})
	if err != nil {
		return Document{}, err
	}
	return Document{
		Variant:     tmpl.Variant(),
		Order:       directive,
		Source:      src,
		PDF:         art.Data,
		ContentType: art.ContentType,
		Pages:       art.Pages,
		Elapsed:     art.Elapsed,
	}, nil
}
