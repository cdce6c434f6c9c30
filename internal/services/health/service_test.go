package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

type engines map[string]bool

func (e engines) Available(engine string) error {
	if e[engine] {
		return nil
	}
	return errors.New("exec: \"" + engine + "\": executable file not found in $PATH")
}

func TestStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		db     Pinger
		found  engines
		want   string
		checks int
	}{
		{name: "all good", db: pinger{}, found: engines{"pdflatex": true, "xelatex": true}, want: StatusOK, checks: 3},
		{name: "memory store", found: engines{"pdflatex": true, "xelatex": true}, want: StatusOK, checks: 2},
		{name: "missing engine", db: pinger{}, found: engines{"pdflatex": true}, want: StatusDegraded, checks: 3},
		{name: "store down", db: pinger{err: errors.New("refused")}, found: engines{}, want: StatusDown, checks: 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewService("v1", "postgres", tt.db, tt.found, []string{"pdflatex", "xelatex"})
			got := svc.Status(context.Background())
			if got.Status != tt.want {
				t.Fatalf("expected %s, got %s (%+v)", tt.want, got.Status, got.Checks)
			}
			if len(got.Checks) != tt.checks {
				t.Fatalf("expected %d checks, got %+v", tt.checks, got.Checks)
			}
		})
	}
}

func TestHandlerStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := NewService("v2", "sqlite", pinger{err: errors.New("locked")}, nil, nil)
	svc.started = time.Now().Add(-90 * time.Second)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	var report Report
	if err := json.Unmarshal(resp.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Version != "v2" || report.UptimeSeconds < 90 || report.Checks["store"].Error != "locked" {
		t.Fatalf("unexpected report %+v", report)
	}
}
