package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"resume-generator/internal/artifacts"
	"resume-generator/internal/shared/metrics"
	"resume-generator/internal/shared/telemetry"
	"resume-generator/resume/compile"
	"resume-generator/resume/model"
	"resume-generator/resume/service"
)

const contentTypeTeX = "application/x-tex"

// Service contains business logic for stored resumes and their renderings.
type Service struct {
	Repo     Repo
	Pipeline *service.Pipeline
	Cache    artifacts.Cache
	Now      func() time.Time

	compiles singleflight.Group
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) cache() artifacts.Cache {
	if s.Cache == nil {
		return artifacts.Nop{}
	}
	return s.Cache
}

// List returns every stored resume.
func (s *Service) List(ctx context.Context) ([]StoredResume, error) {
	return s.Repo.List(ctx)
}

// ListByPerson returns the resumes whose basic_info.name equals person,
// ignoring case and surrounding space. An empty person lists everything.
func (s *Service) ListByPerson(ctx context.Context, person string) ([]StoredResume, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	person = strings.TrimSpace(person)
	if person == "" {
		return items, nil
	}
	out := items[:0]
	for _, it := range items {
		if strings.EqualFold(strings.TrimSpace(it.Record.BasicInfo.Name), person) {
			out = append(out, it)
		}
	}
	return out, nil
}

// Get returns the resume stored under name.
func (s *Service) Get(ctx context.Context, name string) (StoredResume, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return StoredResume{}, ErrInvalidInput
	}
	return s.Repo.Get(ctx, name)
}

// Create validates and stores a new record.
func (s *Service) Create(ctx context.Context, rec model.ResumeRecord) (StoredResume, error) {
	rec.Name = strings.TrimSpace(rec.Name)
	if err := rec.Validate(); err != nil {
		return StoredResume{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	now := s.now()
	stored := StoredResume{
		ID:        uuid.NewString(),
		Record:    rec,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, stored); err != nil {
		return StoredResume{}, err
	}
	telemetry.Info("resume.created", map[string]any{"resume_name": rec.Name, "resume_id": stored.ID})
	return stored, nil
}

// Update replaces the record stored under name. An empty rec.Name takes name;
// a different one is rejected since names are the lookup key.
func (s *Service) Update(ctx context.Context, name string, rec model.ResumeRecord) (StoredResume, error) {
	name = strings.TrimSpace(name)
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		rec.Name = name
	}
	if rec.Name != name {
		return StoredResume{}, fmt.Errorf("%w: record name %q does not match %q", ErrInvalidInput, rec.Name, name)
	}
	if err := rec.Validate(); err != nil {
		return StoredResume{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.Repo.Update(ctx, StoredResume{Record: rec, UpdatedAt: s.now()}); err != nil {
		return StoredResume{}, err
	}
	return s.Repo.Get(ctx, name)
}

// Delete removes the resume stored under name.
func (s *Service) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, name)
}

// Source renders the LaTeX source of a stored resume.
func (s *Service) Source(ctx context.Context, name, template, directive string, keywords []string) (Rendered, error) {
	tmpl, _, err := s.Pipeline.Prepare(template, directive)
	if err != nil {
		return Rendered{}, err
	}
	stored, err := s.Get(ctx, name)
	if err != nil {
		return Rendered{}, err
	}
	src, err := s.Pipeline.GetSource(stored.Record, template, directive, keywords...)
	if err != nil {
		return Rendered{}, err
	}
	metrics.IncSourceRendered()
	return Rendered{
		Name:        stored.Name(),
		Template:    string(tmpl.Variant()),
		Order:       directive,
		Data:        []byte(src),
		ContentType: contentTypeTeX,
	}, nil
}

// Document returns the compiled PDF of a stored resume, from the artifact
// cache when possible. force skips the cache lookup but still refreshes the
// entry. Concurrent requests for the same source share one compilation; it
// is bounded by the compiler timeout rather than by any one caller, and each
// caller stops waiting when its own ctx is done.
func (s *Service) Document(ctx context.Context, name, template, directive string, keywords []string, force bool) (Rendered, error) {
	tmpl, _, err := s.Pipeline.Prepare(template, directive)
	if err != nil {
		return Rendered{}, err
	}
	stored, err := s.Get(ctx, name)
	if err != nil {
		return Rendered{}, err
	}
	src, err := s.Pipeline.GetSource(stored.Record, template, directive, keywords...)
	if err != nil {
		return Rendered{}, err
	}

	cache := s.cache()
	key := artifacts.Key(s.Pipeline.EngineFor(tmpl), src)
	out := Rendered{
		Name:        stored.Name(),
		Template:    string(tmpl.Variant()),
		Order:       directive,
		ContentType: artifacts.ContentType,
		Cache:       CacheMiss,
	}
	if force {
		out.Cache = CacheBypass
	} else {
		data, err := cache.Get(ctx, key)
		switch {
		case err == nil:
			metrics.IncCacheHit()
			out.Data = data
			out.Cache = CacheHit
			return out, nil
		case !errors.Is(err, artifacts.ErrMiss):
			telemetry.Warn("artifact.cache_get_failed", map[string]any{"cache": cache.Name(), "key": key, "error": err})
		}
		metrics.IncCacheMiss()
	}

	shared := context.WithoutCancel(ctx)
	ch := s.compiles.DoChan(key, func() (any, error) {
		return s.compile(shared, stored.Record, string(tmpl.Variant()), directive, keywords, key)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return Rendered{}, ctx.Err()
	}
	if res.Err != nil {
		return Rendered{}, res.Err
	}
	doc := res.Val.(service.Document)
	out.Data = doc.PDF
	out.Pages = doc.Pages
	out.Elapsed = doc.Elapsed
	return out, nil
}

func (s *Service) compile(ctx context.Context, rec model.ResumeRecord, variant, directive string, keywords []string, key string) (service.Document, error) {
	doc, err := s.Pipeline.GetDocument(ctx, rec, variant, directive, keywords...)
	if err != nil {
		result := "error"
		var ce *compile.CompilationError
		if errors.As(err, &ce) {
			result = ce.Reason
		}
		metrics.IncCompile(variant, result)
		telemetry.Error("resume.compile_failed", map[string]any{
			"resume_name": rec.Name,
			"template":    variant,
			"order":       directive,
			"reason":      result,
			"error":       err,
		})
		return service.Document{}, err
	}
	metrics.IncCompile(variant, "ok")
	metrics.ObserveCompileDurationMs(float64(doc.Elapsed.Microseconds()) / 1000.0)
	telemetry.Info("resume.compiled", map[string]any{
		"resume_name": rec.Name,
		"template":    variant,
		"order":       directive,
		"pages":       doc.Pages,
		"bytes":       len(doc.PDF),
		"duration_ms": float64(doc.Elapsed.Microseconds()) / 1000.0,
	})

	cache := s.cache()
	if err := cache.Put(ctx, key, doc.PDF); err != nil {
		telemetry.Warn("artifact.cache_put_failed", map[string]any{"cache": cache.Name(), "key": key, "error": err})
	}
	return doc, nil
}
