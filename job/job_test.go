package job_test

import (
	"testing"

	"github.com/hiq-lab/qhal/job"
)

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status job.Status
		want   bool
	}{
		{job.StatusQueued, false},
		{job.StatusRunning, false},
		{job.StatusCompleted, true},
		{job.StatusFailed, true},
		{job.StatusCancelled, true},
	}
	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.want {
			t.Errorf("%s.IsTerminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatus_IsPending(t *testing.T) {
	tests := []struct {
		status job.Status
		want   bool
	}{
		{job.StatusQueued, true},
		{job.StatusRunning, true},
		{job.StatusCompleted, false},
		{job.StatusFailed, false},
		{job.StatusCancelled, false},
	}
	for _, tt := range tests {
		if got := tt.status.IsPending(); got != tt.want {
			t.Errorf("%s.IsPending() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatus_IsSuccess(t *testing.T) {
	if !job.StatusCompleted.IsSuccess() {
		t.Error("completed.IsSuccess() = false, want true")
	}
	for _, s := range []job.Status{job.StatusQueued, job.StatusRunning, job.StatusFailed, job.StatusCancelled} {
		if s.IsSuccess() {
			t.Errorf("%s.IsSuccess() = true, want false", s)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []job.Status{
		job.StatusQueued, job.StatusRunning, job.StatusCompleted,
		job.StatusFailed, job.StatusCancelled,
	} {
		if !s.Valid() {
			t.Errorf("%s.Valid() = false, want true", s)
		}
	}
	if job.Status("exploded").Valid() {
		t.Error(`Status("exploded").Valid() = true, want false`)
	}
}

func TestID_Equality(t *testing.T) {
	a := job.ID("qjob_01h2xcejqtf2nbrexx3vqjhp41")
	b := job.ID("qjob_01h2xcejqtf2nbrexx3vqjhp41")
	if a != b {
		t.Error("identical IDs compare unequal")
	}
	if a.String() != "qjob_01h2xcejqtf2nbrexx3vqjhp41" {
		t.Errorf("String() = %q", a.String())
	}
}
