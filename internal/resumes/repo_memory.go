package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]StoredResume // name -> resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]StoredResume),
	}
}

// List returns every resume ordered by name.
func (r *MemoryRepo) List(ctx context.Context) ([]StoredResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]StoredResume, 0, len(r.data))
	for _, s := range r.data {
		out = append(out, s)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// Get returns the resume stored under name.
func (r *MemoryRepo) Get(ctx context.Context, name string) (StoredResume, error) {
	if err := ctx.Err(); err != nil {
		return StoredResume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.data[name]
	if !ok {
		return StoredResume{}, ErrNotFound
	}
	return s, nil
}

// Create stores a new resume.
func (r *MemoryRepo) Create(ctx context.Context, s StoredResume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[s.Name()]; ok {
		return ErrAlreadyExists
	}
	r.data[s.Name()] = s
	return nil
}

// Update replaces the record of an existing resume, keeping its ID and
// creation time.
func (r *MemoryRepo) Update(ctx context.Context, s StoredResume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.data[s.Name()]
	if !ok {
		return ErrNotFound
	}
	cur.Record = s.Record
	cur.UpdatedAt = s.UpdatedAt
	r.data[s.Name()] = cur
	return nil
}

// Delete removes the resume stored under name.
func (r *MemoryRepo) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[name]; !ok {
		return ErrNotFound
	}
	delete(r.data, name)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
