// Package artifacts caches compiled PDFs. Keys are derived from the exact
// LaTeX source and engine, so an edited record or template never hits a stale
// entry and nothing needs invalidating.
package artifacts

import (
	"context"
	"errors"
	"strings"

	"resume-generator/internal/shared/util"
)

// ContentType of every cached artifact.
const ContentType = "application/pdf"

// ErrMiss is returned by Get when no artifact is cached under the key.
var ErrMiss = errors.New("artifact not cached")

// Cache stores compiled documents by Key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, pdf []byte) error
	Name() string
}

// Key returns the cache key for source compiled with engine.
func Key(engine, source string) string {
	sum := util.ContentHash([]byte(strings.TrimSpace(engine)), []byte(source))
	return "artifacts/" + sum[:2] + "/" + sum + ".pdf"
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }
func (Nop) Put(context.Context, string, []byte) error   { return nil }
func (Nop) Name() string                                { return "none" }
