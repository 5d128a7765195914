package redis

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hiq-lab/qhal/job"
	"github.com/hiq-lab/qhal/store"
)

// CreateJob stores the record as a Hash and, when queued, adds it to the
// queue Sorted Set scored by submission time.
func (s *Store) CreateJob(ctx context.Context, r *store.Record) error {
	key := jobKey(r.ID.String())

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("qhal/redis: create check exists: %w", err)
	}
	if exists > 0 {
		return store.ErrExists
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, recordToMap(r))
	if r.Status == job.StatusQueued {
		pipe.ZAdd(ctx, queueKey, goredis.Z{
			Score:  float64(r.SubmittedAt.UnixNano()),
			Member: r.ID.String(),
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("qhal/redis: create job: %w", err)
	}
	return nil
}

// GetJob retrieves a record by ID.
func (s *Store) GetJob(ctx context.Context, id job.ID) (*store.Record, error) {
	fields, err := s.client.HGetAll(ctx, jobKey(id.String())).Result()
	if err != nil {
		return nil, fmt.Errorf("qhal/redis: get job: %w", err)
	}
	if len(fields) == 0 {
		return nil, store.ErrNotFound
	}
	return recordFromMap(fields)
}

// UpdateJob persists changes to an existing record. A record leaving the
// queued state is removed from the queue Sorted Set so it can never be
// claimed.
func (s *Store) UpdateJob(ctx context.Context, r *store.Record) error {
	key := jobKey(r.ID.String())

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("qhal/redis: update check exists: %w", err)
	}
	if exists == 0 {
		return store.ErrNotFound
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, recordToMap(r))
	if r.Status != job.StatusQueued {
		pipe.ZRem(ctx, queueKey, r.ID.String())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("qhal/redis: update job: %w", err)
	}
	return nil
}

// updateIfScript writes the record's fields only while the Hash still
// holds the expected status. A record leaving the queued state is
// dropped from the queue Sorted Set, same as UpdateJob. KEYS: job hash,
// queue set. ARGV: expected status, job ID, field/value pairs.
var updateIfScript = goredis.NewScript(`
local status = redis.call('HGET', KEYS[1], 'status')
if status == false then return 'missing' end
if status ~= ARGV[1] then return 'conflict' end
for i = 3, #ARGV, 2 do
	redis.call('HSET', KEYS[1], ARGV[i], ARGV[i+1])
end
if redis.call('HGET', KEYS[1], 'status') ~= 'queued' then
	redis.call('ZREM', KEYS[2], ARGV[2])
end
return 'ok'
`)

// UpdateJobIf persists changes only while the record still holds the
// expected status. The check and the write run inside one Lua script,
// so a concurrent writer can never be silently overwritten.
func (s *Store) UpdateJobIf(ctx context.Context, r *store.Record, expect job.Status) error {
	args := []any{string(expect), r.ID.String()}
	for field, value := range recordToMap(r) {
		args = append(args, field, value)
	}

	res, err := updateIfScript.Run(ctx, s.client,
		[]string{jobKey(r.ID.String()), queueKey}, args...).Result()
	if err != nil {
		return fmt.Errorf("qhal/redis: conditional update: %w", err)
	}
	switch res {
	case "missing":
		return store.ErrNotFound
	case "conflict":
		return store.ErrConflict
	}
	return nil
}

// ClaimQueued pops up to limit members from the queue Sorted Set
// (lowest score = oldest submission) and moves them to running. ZPopMin
// is atomic, so concurrent claimers never receive the same member; a
// popped record that already left the queued state is skipped. When a
// claim fails midway the unprocessed members are put back on the queue
// with their original scores, and the records claimed before the
// failure are returned alongside the error — they are already running
// and must still be executed.
func (s *Store) ClaimQueued(ctx context.Context, limit int) ([]*store.Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	members, err := s.client.ZPopMin(ctx, queueKey, int64(limit)).Result()
	if err != nil {
		return nil, fmt.Errorf("qhal/redis: claim zpopmin: %w", err)
	}

	now := time.Now().UTC()
	claimed := make([]*store.Record, 0, len(members))
	for i, z := range members {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}
		r, getErr := s.GetJob(ctx, job.ID(id))
		if getErr != nil {
			if errors.Is(getErr, store.ErrNotFound) {
				continue
			}
			s.requeue(ctx, members[i:])
			return claimed, getErr
		}
		if r.Status != job.StatusQueued {
			continue
		}

		r.Status = job.StatusRunning
		startedAt := now
		r.StartedAt = &startedAt
		if _, hErr := s.client.HSet(ctx, jobKey(id),
			"status", string(job.StatusRunning),
			"started_at", now.Format(time.RFC3339Nano),
		).Result(); hErr != nil {
			s.requeue(ctx, members[i:])
			return claimed, fmt.Errorf("qhal/redis: claim update: %w", hErr)
		}
		claimed = append(claimed, r)
	}
	return claimed, nil
}

// requeue returns popped members to the queue Sorted Set with their
// original scores so a failed claim never strands a queued record in
// an unclaimable limbo.
func (s *Store) requeue(ctx context.Context, members []goredis.Z) {
	if len(members) == 0 {
		return
	}
	if err := s.client.ZAdd(ctx, queueKey, members...).Err(); err != nil {
		s.logger.Error("requeue after failed claim",
			slog.Int("members", len(members)),
			slog.String("error", err.Error()))
	}
}

// CountQueued returns the queue Sorted Set cardinality.
func (s *Store) CountQueued(ctx context.Context) (int, error) {
	n, err := s.client.ZCard(ctx, queueKey).Result()
	if err != nil {
		return 0, fmt.Errorf("qhal/redis: count queued: %w", err)
	}
	return int(n), nil
}

// ──────────────────────────────────────────────────
// Hash mapping
// ──────────────────────────────────────────────────

func recordToMap(r *store.Record) map[string]any {
	fields := map[string]any{
		"id":           r.ID.String(),
		"backend":      r.Backend,
		"status":       string(r.Status),
		"shots":        strconv.Itoa(r.Shots),
		"payload":      base64.StdEncoding.EncodeToString(r.Payload),
		"result":       base64.StdEncoding.EncodeToString(r.Result),
		"error":        r.Error,
		"submitted_at": r.SubmittedAt.Format(time.RFC3339Nano),
	}
	if r.StartedAt != nil {
		fields["started_at"] = r.StartedAt.Format(time.RFC3339Nano)
	}
	if r.CompletedAt != nil {
		fields["completed_at"] = r.CompletedAt.Format(time.RFC3339Nano)
	}
	return fields
}

func recordFromMap(fields map[string]string) (*store.Record, error) {
	shots, err := strconv.Atoi(fields["shots"])
	if err != nil {
		return nil, fmt.Errorf("qhal/redis: parse shots %q: %w", fields["shots"], err)
	}
	submittedAt, err := time.Parse(time.RFC3339Nano, fields["submitted_at"])
	if err != nil {
		return nil, fmt.Errorf("qhal/redis: parse submitted_at: %w", err)
	}
	payload, err := base64.StdEncoding.DecodeString(fields["payload"])
	if err != nil {
		return nil, fmt.Errorf("qhal/redis: decode payload: %w", err)
	}
	res, err := base64.StdEncoding.DecodeString(fields["result"])
	if err != nil {
		return nil, fmt.Errorf("qhal/redis: decode result: %w", err)
	}

	r := &store.Record{
		ID:          job.ID(fields["id"]),
		Backend:     fields["backend"],
		Status:      job.Status(fields["status"]),
		Shots:       shots,
		Payload:     emptyToNil(payload),
		Result:      emptyToNil(res),
		Error:       fields["error"],
		SubmittedAt: submittedAt,
	}
	if v := fields["started_at"]; v != "" {
		t, pErr := time.Parse(time.RFC3339Nano, v)
		if pErr != nil {
			return nil, fmt.Errorf("qhal/redis: parse started_at: %w", pErr)
		}
		r.StartedAt = &t
	}
	if v := fields["completed_at"]; v != "" {
		t, pErr := time.Parse(time.RFC3339Nano, v)
		if pErr != nil {
			return nil, fmt.Errorf("qhal/redis: parse completed_at: %w", pErr)
		}
		r.CompletedAt = &t
	}
	return r, nil
}

func emptyToNil(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
