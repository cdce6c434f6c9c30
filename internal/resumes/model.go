package resumes

import (
	"time"

	"resume-generator/resume/model"
)

// StoredResume is a record as persisted, keyed by Record.Name.
type StoredResume struct {
	ID        string
	Record    model.ResumeRecord
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Name returns the record's lookup key.
func (s StoredResume) Name() string { return s.Record.Name }

// Rendered is the body of a source or document response.
type Rendered struct {
	Name        string
	Template    string
	Order       string
	Data        []byte
	ContentType string
	Pages       int
	Cache       string
	Elapsed     time.Duration
}
