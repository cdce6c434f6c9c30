package resumes

import "context"

// Repo defines persistence operations for resume records.
type Repo interface {
	List(ctx context.Context) ([]StoredResume, error)
	Get(ctx context.Context, name string) (StoredResume, error)
	Create(ctx context.Context, r StoredResume) error
	Update(ctx context.Context, r StoredResume) error
	Delete(ctx context.Context, name string) error
}
