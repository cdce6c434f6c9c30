package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/resumes"
	"resume-generator/internal/services/health"
	"resume-generator/internal/shared/config"
	"resume-generator/internal/shared/server/middleware"
	"resume-generator/resume/compile"
	"resume-generator/resume/service"
	"resume-generator/resume/templates"
)

type stubCompiler struct{}

func (stubCompiler) Compile(ctx context.Context, job compile.Job) (compile.Artifact, error) {
	return compile.Artifact{Data: []byte("%PDF-1.4"), ContentType: "application/pdf", Pages: 1}, nil
}

func newTestRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	svc := &resumes.Service{
		Repo:     resumes.NewMemoryRepo(),
		Pipeline: service.NewPipeline(templates.Default(), stubCompiler{}),
	}
	clock := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	return NewRouter(RouterDeps{
		Config:         cfg,
		ResumesHandler: resumes.NewHandler(svc),
		HealthHandler:  health.NewHandler(health.NewService("test", "memory", nil, nil, nil)),
		Limiter:        middleware.NewRateLimiter(func() time.Time { return clock }),
	})
}

func TestRouterServesHealthTemplatesAndMetrics(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	tests := []struct {
		path string
		want int
	}{
		{path: "/api/v1/health", want: http.StatusOK},
		{path: "/api/v1/templates", want: http.StatusOK},
		{path: "/api/v1/resumes", want: http.StatusOK},
		{path: "/metrics", want: http.StatusOK},
		{path: "/api/v1/nope", want: http.StatusNotFound},
	}
	for _, tt := range tests {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if resp.Code != tt.want {
			t.Fatalf("%s: expected %d, got %d (%s)", tt.path, tt.want, resp.Code, resp.Body.String())
		}
		if resp.Header().Get("X-Request-Id") == "" {
			t.Fatalf("%s: missing request id header", tt.path)
		}
	}
}

func TestRouterLimitsOnlyCompileRoutes(t *testing.T) {
	r := newTestRouter(t, config.Config{CompileRateLimitRPS: 1, CompileRateLimitBurst: 1})

	body, _ := json.Marshal(map[string]any{
		"name":       "ada",
		"basic_info": map[string]any{"name": "Ada Lovelace"},
	})
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}

	for i := 0; i < 3; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/ada/source/classic/pwe", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("source %d: expected 200, got %d", i, resp.Code)
		}
	}

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/ada/document/classic/pwe", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("document: expected 200, got %d (%s)", first.Code, first.Body.String())
	}
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/ada/document/classic/pwe", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("document: expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestAddr(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"", ":8080"},
		{":9000", ":9000"},
		{"9000", ":9000"},
	}
	for _, tt := range tests {
		tt := tt
		if got := Addr(tt.in); got != tt.want {
			t.Fatalf("Addr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
