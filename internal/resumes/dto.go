package resumes

import (
	"time"

	"resume-generator/resume/model"
)

// ResumeResponse is the outward-facing representation of a stored resume.
type ResumeResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Record    model.ResumeRecord `json:"record"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// ResumeSummary is one entry of the list response.
type ResumeSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toResponse(s StoredResume) ResumeResponse {
	return ResumeResponse{
		ID:        s.ID,
		Name:      s.Name(),
		Record:    s.Record,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSummary(s StoredResume) ResumeSummary {
	return ResumeSummary{
		ID:          s.ID,
		Name:        s.Name(),
		DisplayName: s.Record.BasicInfo.Name,
		UpdatedAt:   s.UpdatedAt,
	}
}
