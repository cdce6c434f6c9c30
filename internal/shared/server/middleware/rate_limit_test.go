package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func compileGroup(c *gin.Context) string {
	if strings.HasSuffix(c.FullPath(), "/document/:template/:order") {
		return GroupCompile
	}
	return GroupDefault
}

func TestRateLimitOnlyCompileRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		GroupFor: compileGroup,
		Limiter:  limiter,
		Rules:    map[string]RateLimitRule{GroupCompile: {Rate: 1, Burst: 2}},
	}))
	r.GET("/api/v1/resumes/:name/document/:template/:order", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/api/v1/resumes/:name", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/a", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("unlimited route request %d got %d", i+1, resp.Code)
		}
	}
	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/a/document/classic/pwe", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("compile request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/a/document/classic/pwe", nil))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After 1, got %q", resp.Header().Get("Retry-After"))
	}
	var payload struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error.Code != "rate_limited" || payload.Error.Details["group"] != GroupCompile {
		t.Fatalf("unexpected body: %+v", payload)
	}

	now = now.Add(time.Second)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/a/document/classic/pwe", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected refill after 1s, got %d", resp.Code)
	}
}

func TestRateLimiterAllowRetryAfter(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 2, Burst: 1}
	if ok, _ := l.Allow("k", rule); !ok {
		t.Fatalf("first call must pass")
	}
	ok, wait := l.Allow("k", rule)
	if ok || wait != 500*time.Millisecond {
		t.Fatalf("expected 500ms wait, got ok=%v wait=%s", ok, wait)
	}
	if ok, _ := l.Allow("other", rule); !ok {
		t.Fatalf("buckets must be per key")
	}
}
