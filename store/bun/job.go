package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/hiq-lab/qhal/job"
	"github.com/hiq-lab/qhal/store"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

func isDuplicateKey(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation
}

// CreateJob persists a new job record.
func (s *Store) CreateJob(ctx context.Context, r *store.Record) error {
	m := toRecordModel(r)
	_, err := s.db.NewInsert().Model(m).Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return store.ErrExists
		}
		return fmt.Errorf("qhal/bun: create job: %w", err)
	}
	return nil
}

// GetJob retrieves a job record by ID.
func (s *Store) GetJob(ctx context.Context, id job.ID) (*store.Record, error) {
	m := new(recordModel)
	err := s.db.NewSelect().Model(m).
		Where("id = ?", id.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("qhal/bun: get job: %w", err)
	}
	return fromRecordModel(m), nil
}

// UpdateJob persists changes to an existing record.
func (s *Store) UpdateJob(ctx context.Context, r *store.Record) error {
	m := toRecordModel(r)
	res, err := s.db.NewUpdate().Model(m).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("qhal/bun: update job: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

// UpdateJobIf persists changes only while the stored record still holds
// the expected status, guarded by the UPDATE's WHERE clause.
func (s *Store) UpdateJobIf(ctx context.Context, r *store.Record, expect job.Status) error {
	m := toRecordModel(r)
	res, err := s.db.NewUpdate().Model(m).WherePK().
		Where("status = ?", string(expect)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("qhal/bun: conditional update: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows > 0 {
		return nil
	}

	// No row matched: either the job is gone or its status moved on.
	if _, err := s.GetJob(ctx, r.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound
		}
		return err
	}
	return store.ErrConflict
}

// ClaimQueued atomically claims up to limit queued records, sets them to
// running, and returns them oldest-first. Uses SELECT FOR UPDATE SKIP
// LOCKED for concurrent-safe claiming via raw SQL.
func (s *Store) ClaimQueued(ctx context.Context, limit int) ([]*store.Record, error) {
	var models []recordModel
	_, err := s.db.NewRaw(`
		WITH claimed AS (
			UPDATE qhal_jobs
			SET status = 'running', started_at = NOW()
			WHERE id IN (
				SELECT id FROM qhal_jobs
				WHERE status = 'queued'
				ORDER BY submitted_at ASC
				FOR UPDATE SKIP LOCKED
				LIMIT ?0
			)
			RETURNING *
		)
		SELECT * FROM claimed ORDER BY submitted_at ASC`,
		limit,
	).Exec(ctx, &models)
	if err != nil {
		return nil, fmt.Errorf("qhal/bun: claim queued: %w", err)
	}

	records := make([]*store.Record, 0, len(models))
	for i := range models {
		records = append(records, fromRecordModel(&models[i]))
	}
	return records, nil
}

// CountQueued returns the number of records still in queued state.
func (s *Store) CountQueued(ctx context.Context) (int, error) {
	n, err := s.db.NewSelect().Model((*recordModel)(nil)).
		Where("status = ?", string(job.StatusQueued)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("qhal/bun: count queued: %w", err)
	}
	return n, nil
}
