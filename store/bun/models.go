package bunstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/hiq-lab/qhal/job"
	"github.com/hiq-lab/qhal/store"
)

// ── Job record model ──────────────────────────────────────────────

type recordModel struct {
	bun.BaseModel `bun:"table:qhal_jobs"`

	ID          string     `bun:"id,pk"`
	Backend     string     `bun:"backend,notnull"`
	Status      string     `bun:"status,notnull,default:'queued'"`
	Shots       int        `bun:"shots,notnull,default:0"`
	Payload     []byte     `bun:"payload,type:bytea"`
	Result      []byte     `bun:"result,type:bytea"`
	Error       string     `bun:"error"`
	SubmittedAt time.Time  `bun:"submitted_at,notnull,default:current_timestamp"`
	StartedAt   *time.Time `bun:"started_at"`
	CompletedAt *time.Time `bun:"completed_at"`
}

func toRecordModel(r *store.Record) *recordModel {
	return &recordModel{
		ID:          r.ID.String(),
		Backend:     r.Backend,
		Status:      string(r.Status),
		Shots:       r.Shots,
		Payload:     r.Payload,
		Result:      r.Result,
		Error:       r.Error,
		SubmittedAt: r.SubmittedAt,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
	}
}

func fromRecordModel(m *recordModel) *store.Record {
	return &store.Record{
		ID:          job.ID(m.ID),
		Backend:     m.Backend,
		Status:      job.Status(m.Status),
		Shots:       m.Shots,
		Payload:     m.Payload,
		Result:      m.Result,
		Error:       m.Error,
		SubmittedAt: m.SubmittedAt,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
	}
}
