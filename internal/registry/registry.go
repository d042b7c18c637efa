package registry

import (
	"errors"
	"sync"

	"github.com/ytget/mediafetch/internal/model"
)

// ErrNotFound is returned when a job id is unknown or already evicted.
// Pollers treat it as an expected condition, not a failure.
var ErrNotFound = errors.New("job not found")

// Registry is the process-wide job map. It is the only structure shared
// between the launcher, orchestrator goroutines, the retention sweeper,
// and pollers, so every access goes through the mutex. Reads hand out
// clones; the live record is only ever touched inside Update.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*model.Job
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		jobs: make(map[string]*model.Job),
	}
}

// Put stores a job record under its id
func (r *Registry) Put(job *model.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
}

// Get returns a snapshot of the job with the given id, or ErrNotFound.
func (r *Registry) Get(id string) (*model.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, exists := r.jobs[id]
	if !exists {
		return nil, ErrNotFound
	}
	return job.Clone(), nil
}

// Update applies fn to the live record under the write lock. It returns
// false if the id is unknown (the job may have been swept already). fn
// must not block; the lock serializes it against every poller.
func (r *Registry) Update(id string, fn func(*model.Job)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[id]
	if !exists {
		return false
	}
	fn(job)
	return true
}

// Remove deletes a job record. Removing an absent id is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
}

// Len returns the number of records currently held
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}
