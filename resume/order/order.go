// Package order interprets section ordering directives such as "pwe".
package order

import (
	"fmt"
	"unicode/utf8"
)

// Section is one orderable resume section.
type Section int

const (
	Projects Section = iota + 1
	Experience
	Education
)

func (s Section) String() string {
	switch s {
	case Projects:
		return "projects"
	case Experience:
		return "experience"
	case Education:
		return "education"
	default:
		return fmt.Sprintf("section(%d)", int(s))
	}
}

// Letter returns the directive character for s.
func (s Section) Letter() byte {
	switch s {
	case Projects:
		return 'p'
	case Experience:
		return 'w'
	case Education:
		return 'e'
	default:
		return '?'
	}
}

// InvalidOrderError reports a directive that is not a permutation of p, w and e.
type InvalidOrderError struct {
	Directive string
	Reason    string
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("invalid order %q: %s", e.Directive, e.Reason)
}

// Resolve translates a directive into sections, position for position. The
// directive must be exactly three characters from {p, w, e} with no repeats.
func Resolve(directive string) ([]Section, error) {
	if n := utf8.RuneCountInString(directive); n != 3 {
		return nil, &InvalidOrderError{Directive: directive, Reason: fmt.Sprintf("must be exactly 3 characters, got %d", n)}
	}
	out := make([]Section, 0, 3)
	var seen [4]bool
	for _, r := range directive {
		s, ok := fromLetter(r)
		if !ok {
			return nil, &InvalidOrderError{Directive: directive, Reason: fmt.Sprintf("unknown section %q, use p, w or e", r)}
		}
		if seen[s] {
			return nil, &InvalidOrderError{Directive: directive, Reason: fmt.Sprintf("section %q repeated", r)}
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}

func fromLetter(r rune) (Section, bool) {
	switch r {
	case 'p':
		return Projects, true
	case 'w':
		return Experience, true
	case 'e':
		return Education, true
	default:
		return 0, false
	}
}

// All returns the six valid directives.
func All() []string {
	return []string{"pwe", "pew", "wpe", "wep", "epw", "ewp"}
}
