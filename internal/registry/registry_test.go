package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ytget/mediafetch/internal/model"
)

func TestRegistry_PutGet(t *testing.T) {
	reg := New()

	job := model.NewJob("job-1")
	reg.Put(job)

	got, err := reg.Get("job-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got.ID != "job-1" {
		t.Errorf("Expected ID 'job-1', got '%s'", got.ID)
	}

	// Get must return a snapshot, not the live record.
	got.Progress = 50
	again, _ := reg.Get("job-1")
	if again.Progress != 0 {
		t.Errorf("Expected snapshot isolation, live record progress = %f", again.Progress)
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	reg := New()

	_, err := reg.Get("never-issued")
	if err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRegistry_Update(t *testing.T) {
	reg := New()
	reg.Put(model.NewJob("job-1"))

	ok := reg.Update("job-1", func(j *model.Job) {
		j.Status = model.JobStatusDownloading
		j.Progress = 42
	})
	if !ok {
		t.Fatal("Expected update to find the job")
	}

	got, _ := reg.Get("job-1")
	if got.Status != model.JobStatusDownloading || got.Progress != 42 {
		t.Errorf("Expected updated record, got %+v", got)
	}

	if reg.Update("missing", func(j *model.Job) {}) {
		t.Error("Expected update on missing id to report false")
	}
}

func TestRegistry_Remove(t *testing.T) {
	reg := New()
	reg.Put(model.NewJob("job-1"))

	reg.Remove("job-1")
	if _, err := reg.Get("job-1"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound after remove, got %v", err)
	}

	// Idempotent.
	reg.Remove("job-1")
	if reg.Len() != 0 {
		t.Errorf("Expected empty registry, got %d", reg.Len())
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("job-%d", n)
			reg.Put(model.NewJob(id))
			for k := 0; k < 100; k++ {
				reg.Update(id, func(j *model.Job) {
					j.Progress = float64(k)
				})
				if _, err := reg.Get(id); err != nil {
					t.Errorf("Expected job %s to exist, got %v", id, err)
					return
				}
			}
		}(i)
	}

	// Concurrent pollers on ids that may or may not exist yet.
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 200; k++ {
				_, _ = reg.Get(fmt.Sprintf("job-%d", k%20))
			}
		}()
	}

	wg.Wait()

	if reg.Len() != 20 {
		t.Errorf("Expected 20 jobs, got %d", reg.Len())
	}
}
