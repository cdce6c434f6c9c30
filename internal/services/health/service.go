package health

import (
	"context"
	"time"
)

// Overall states reported by Status.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusDown     = "down"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// EngineChecker is satisfied by *compile.Compiler.
type EngineChecker interface {
	Available(engine string) error
}

// Check is the outcome of one dependency probe.
type Check struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Report is the health payload.
type Report struct {
	Status        string           `json:"status"`
	Version       string           `json:"version"`
	UptimeSeconds int64            `json:"uptimeSeconds"`
	Store         string           `json:"store"`
	Checks        map[string]Check `json:"checks"`
}

// Service encapsulates health-related checks. A failing store takes the
// service down; a missing TeX engine only degrades it since sources still
// render.
type Service struct {
	Version  string
	Store    string
	DB       Pinger
	Compiler EngineChecker
	Engines  []string

	started time.Time
	now     func() time.Time
}

// NewService constructs a new health service.
func NewService(version, store string, db Pinger, compiler EngineChecker, engines []string) *Service {
	return &Service{
		Version:  version,
		Store:    store,
		DB:       db,
		Compiler: compiler,
		Engines:  engines,
		started:  time.Now(),
		now:      time.Now,
	}
}

// Status probes every dependency.
func (s *Service) Status(ctx context.Context) Report {
	r := Report{
		Status:        StatusOK,
		Version:       s.Version,
		UptimeSeconds: int64(s.now().Sub(s.started).Seconds()),
		Store:         s.Store,
		Checks:        map[string]Check{},
	}

	if s.DB != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := s.DB.PingContext(pingCtx)
		cancel()
		r.Checks["store"] = toCheck(err)
		if err != nil {
			r.Status = StatusDown
		}
	}

	for _, engine := range s.Engines {
		var err error
		if s.Compiler != nil {
			err = s.Compiler.Available(engine)
		}
		r.Checks["engine:"+engine] = toCheck(err)
		if err != nil && r.Status == StatusOK {
			r.Status = StatusDegraded
		}
	}
	return r
}

func toCheck(err error) Check {
	if err != nil {
		return Check{OK: false, Error: err.Error()}
	}
	return Check{OK: true}
}
