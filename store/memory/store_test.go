package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hiq-lab/qhal/job"
	"github.com/hiq-lab/qhal/store"
	"github.com/hiq-lab/qhal/store/memory"
)

func newRecord(id string, submittedAt time.Time) *store.Record {
	return &store.Record{
		ID:          job.ID(id),
		Backend:     "sim",
		Status:      job.StatusQueued,
		Shots:       1000,
		Payload:     []byte(`{"qubits":2}`),
		SubmittedAt: submittedAt,
	}
}

func TestCreateGet(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	r := newRecord("qjob_a", time.Now().UTC())
	if err := s.CreateJob(ctx, r); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	got, err := s.GetJob(ctx, "qjob_a")
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if got.Status != job.StatusQueued || got.Shots != 1000 {
		t.Errorf("GetJob = %+v", got)
	}

	// Returned record is a copy.
	got.Status = job.StatusFailed
	again, _ := s.GetJob(ctx, "qjob_a")
	if again.Status != job.StatusQueued {
		t.Error("GetJob must return a copy")
	}
}

func TestCreateDuplicate(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	r := newRecord("qjob_a", time.Now().UTC())
	if err := s.CreateJob(ctx, r); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if err := s.CreateJob(ctx, r); !errors.Is(err, store.ErrExists) {
		t.Errorf("duplicate CreateJob = %v, want ErrExists", err)
	}
}

func TestGetUnknown(t *testing.T) {
	s := memory.New()
	if _, err := s.GetJob(context.Background(), "qjob_nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetJob = %v, want ErrNotFound", err)
	}
}

func TestUpdateUnknown(t *testing.T) {
	s := memory.New()
	r := newRecord("qjob_nope", time.Now().UTC())
	if err := s.UpdateJob(context.Background(), r); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateJob = %v, want ErrNotFound", err)
	}
}

func TestUpdateJobIf_MatchWrites(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	if err := s.CreateJob(ctx, newRecord("qjob_a", time.Now().UTC())); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	claimed, err := s.ClaimQueued(ctx, 1)
	if err != nil || len(claimed) != 1 {
		t.Fatalf("ClaimQueued = %v, %v", claimed, err)
	}

	rec := claimed[0]
	rec.Status = job.StatusCompleted
	rec.Result = []byte(`{"shots":1000}`)
	if err := s.UpdateJobIf(ctx, rec, job.StatusRunning); err != nil {
		t.Fatalf("UpdateJobIf: %v", err)
	}
	got, _ := s.GetJob(ctx, "qjob_a")
	if got.Status != job.StatusCompleted || got.Result == nil {
		t.Errorf("GetJob = %+v", got)
	}
}

func TestUpdateJobIf_GuardsStatus(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	if err := s.CreateJob(ctx, newRecord("qjob_a", time.Now().UTC())); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	claimed, err := s.ClaimQueued(ctx, 1)
	if err != nil || len(claimed) != 1 {
		t.Fatalf("ClaimQueued = %v, %v", claimed, err)
	}

	// A cancellation lands while the claimer still holds its copy.
	cancelled := *claimed[0]
	cancelled.Status = job.StatusCancelled
	if err := s.UpdateJob(ctx, &cancelled); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}

	rec := claimed[0]
	rec.Status = job.StatusCompleted
	rec.Result = []byte(`{"shots":1000}`)
	if err := s.UpdateJobIf(ctx, rec, job.StatusRunning); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("UpdateJobIf = %v, want ErrConflict", err)
	}
	got, _ := s.GetJob(ctx, "qjob_a")
	if got.Status != job.StatusCancelled {
		t.Errorf("conflicting update overwrote status: %s", got.Status)
	}

	if err := s.UpdateJobIf(ctx, newRecord("qjob_nope", time.Now().UTC()), job.StatusQueued); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateJobIf unknown = %v, want ErrNotFound", err)
	}
}

func TestClaimQueued_OldestFirst(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"qjob_c", "qjob_a", "qjob_b"} {
		r := newRecord(id, base.Add(time.Duration(i)*time.Second))
		if err := s.CreateJob(ctx, r); err != nil {
			t.Fatalf("CreateJob: %v", err)
		}
	}

	claimed, err := s.ClaimQueued(ctx, 2)
	if err != nil {
		t.Fatalf("ClaimQueued: %v", err)
	}
	if len(claimed) != 2 {
		t.Fatalf("claimed %d records, want 2", len(claimed))
	}
	if claimed[0].ID != "qjob_c" || claimed[1].ID != "qjob_a" {
		t.Errorf("claim order = %s, %s; want qjob_c, qjob_a", claimed[0].ID, claimed[1].ID)
	}
	for _, r := range claimed {
		if r.Status != job.StatusRunning {
			t.Errorf("claimed record %s status = %s, want running", r.ID, r.Status)
		}
		if r.StartedAt == nil {
			t.Errorf("claimed record %s has no StartedAt", r.ID)
		}
	}

	// The third record is still queued.
	n, err := s.CountQueued(ctx)
	if err != nil {
		t.Fatalf("CountQueued: %v", err)
	}
	if n != 1 {
		t.Errorf("CountQueued = %d, want 1", n)
	}
}

func TestClaimQueued_SkipsCancelled(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	r := newRecord("qjob_a", time.Now().UTC())
	if err := s.CreateJob(ctx, r); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	r.Status = job.StatusCancelled
	if err := s.UpdateJob(ctx, r); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}

	claimed, err := s.ClaimQueued(ctx, 10)
	if err != nil {
		t.Fatalf("ClaimQueued: %v", err)
	}
	if len(claimed) != 0 {
		t.Errorf("claimed %d records, want 0 — cancelled jobs must not run", len(claimed))
	}
}

func TestClaimQueued_ConcurrentClaimsAreExclusive(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		r := newRecord(string(rune('a'+i%26))+string(rune('0'+i/26)), time.Now().UTC())
		r.ID = job.ID(r.ID.String() + "_x")
		if err := s.CreateJob(ctx, r); err != nil {
			t.Fatalf("CreateJob: %v", err)
		}
	}

	var mu sync.Mutex
	seen := make(map[job.ID]int)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				claimed, err := s.ClaimQueued(ctx, 3)
				if err != nil || len(claimed) == 0 {
					return
				}
				mu.Lock()
				for _, r := range claimed {
					seen[r.ID]++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != 50 {
		t.Errorf("claimed %d distinct records, want 50", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("record %s claimed %d times", id, n)
		}
	}
}

func TestClose(t *testing.T) {
	s := memory.New()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Ping(context.Background()); !errors.Is(err, store.ErrClosed) {
		t.Errorf("Ping after Close = %v, want ErrClosed", err)
	}
	if _, err := s.GetJob(context.Background(), "qjob_a"); !errors.Is(err, store.ErrClosed) {
		t.Errorf("GetJob after Close = %v, want ErrClosed", err)
	}
}
