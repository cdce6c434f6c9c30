// Package templates holds the document skeletons a resume can be rendered into.
// Each variant owns its preamble and its section renderers.
package templates

import (
	"fmt"
	"sort"
	"strings"

	"resume-generator/resume/model"
	"resume-generator/resume/order"
)

// Variant identifies a document skeleton.
type Variant string

const (
	Classic   Variant = "classic"
	ModernCV  Variant = "moderncv"
	Alternate Variant = "alternate"
)

// Template renders a record into complete LaTeX source. Implementations are
// stateless and safe for concurrent use.
type Template interface {
	Variant() Variant
	Description() string
	// Engine is the TeX engine the skeleton compiles with.
	Engine() string
	RenderSource(record model.ResumeRecord, sections []order.Section) string
}

// UnknownVariantError reports a template token that names no variant.
type UnknownVariantError struct {
	Token string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown template %q", e.Token)
}

// ParseVariant maps a request token to a Variant. "russel" and "russell" are
// accepted for Alternate.
func ParseVariant(token string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "classic":
		return Classic, nil
	case "moderncv":
		return ModernCV, nil
	case "alternate", "russel", "russell":
		return Alternate, nil
	default:
		return "", &UnknownVariantError{Token: token}
	}
}

// Info describes a registered template.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Engine      string `json:"engine"`
}

// Registry maps variants to templates.
type Registry struct {
	templates map[Variant]Template
}

// NewRegistry registers ts, later entries replacing earlier ones of the same
// variant.
func NewRegistry(ts ...Template) *Registry {
	r := &Registry{templates: make(map[Variant]Template, len(ts))}
	for _, t := range ts {
		r.templates[t.Variant()] = t
	}
	return r
}

// Default returns a registry with the built-in variants.
func Default() *Registry {
	return NewRegistry(NewClassic(), NewModernCV(), NewAlternate())
}

// Get returns the template registered for v.
func (r *Registry) Get(v Variant) (Template, bool) {
	t, ok := r.templates[v]
	return t, ok
}

// Lookup parses token and returns the matching template.
func (r *Registry) Lookup(token string) (Template, error) {
	v, err := ParseVariant(token)
	if err != nil {
		return nil, err
	}
	t, ok := r.templates[v]
	if !ok {
		return nil, &UnknownVariantError{Token: token}
	}
	return t, nil
}

// List returns the registered templates sorted by name.
func (r *Registry) List() []Info {
	out := make([]Info, 0, len(r.templates))
	for v, t := range r.templates {
		out = append(out, Info{Name: string(v), Description: t.Description(), Engine: t.Engine()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Engines returns the distinct TeX engines the registered templates need.
func (r *Registry) Engines() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range r.templates {
		if _, ok := seen[t.Engine()]; ok {
			continue
		}
		seen[t.Engine()] = struct{}{}
		out = append(out, t.Engine())
	}
	sort.Strings(out)
	return out
}
