package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/sortscope/internal/ir"
	"github.com/roach88/sortscope/internal/trace"
)

var (
	// ErrNotFound is returned when no recording has the requested ID.
	ErrNotFound = errors.New("recording not found")

	// ErrHashMismatch is returned when stored steps no longer hash to the
	// stored trace hash.
	ErrHashMismatch = errors.New("recording hash mismatch")
)

// Summary describes a stored recording without its steps.
type Summary struct {
	ID        string `json:"id"`
	Initiator string `json:"initiator"`
	Algorithm string `json:"algorithm"`
	N         int    `json:"n"`
	Seed      uint64 `json:"seed"`
	Steps     int    `json:"steps"`
	Hash      string `json:"hash"`
}

// ReadRecording loads a recording with all of its steps and verifies the
// trace hash.
func (s *Store) ReadRecording(ctx context.Context, id string) (*trace.Recording, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, initiator, algorithm, n, seed, initial, trace_hash
		FROM recordings
		WHERE id = ?
	`, id)

	var (
		rec         trace.Recording
		seed        string
		initialJSON string
	)
	err := row.Scan(&rec.ID, &rec.Initiator, &rec.Algorithm, &rec.N, &seed, &initialJSON, &rec.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read recording %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read recording %s: %w", id, err)
	}
	if rec.Seed, err = parseSeed(seed); err != nil {
		return nil, fmt.Errorf("read recording %s: %w", id, err)
	}
	if rec.Initial, err = unmarshalInitial(initialJSON); err != nil {
		return nil, fmt.Errorf("read recording %s: %w", id, err)
	}
	if rec.Steps, err = s.readSteps(ctx, id); err != nil {
		return nil, fmt.Errorf("read recording %s: %w", id, err)
	}

	hash, err := ir.TraceHash(rec.Initial, rec.Steps)
	if err != nil {
		return nil, fmt.Errorf("read recording %s: %w", id, err)
	}
	if hash != rec.Hash {
		return nil, fmt.Errorf("read recording %s: %w", id, ErrHashMismatch)
	}
	return &rec, nil
}

// readSteps returns the steps of a recording ordered by seq.
func (s *Store) readSteps(ctx context.Context, id string) (ir.Trace, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload
		FROM steps
		WHERE recording_id = ?
		ORDER BY seq ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	steps := ir.Trace{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		step, err := ir.UnmarshalStep([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", len(steps), err)
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

// Filter narrows ListRecordings. Empty fields match everything.
type Filter struct {
	Algorithm string
	Initiator string
}

// ListRecordings returns the stored recordings matching f in creation
// order. Returns an empty slice (not nil) when nothing matches.
func (s *Store) ListRecordings(ctx context.Context, f Filter) ([]Summary, error) {
	query := `
		SELECT id, initiator, algorithm, n, seed, step_count, trace_hash
		FROM recordings`
	var (
		where []string
		args  []any
	)
	if f.Algorithm != "" {
		where = append(where, "algorithm = ?")
		args = append(args, f.Algorithm)
	}
	if f.Initiator != "" {
		where = append(where, "initiator = ?")
		args = append(args, f.Initiator)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id COLLATE BINARY ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var (
			sum  Summary
			seed string
		)
		if err := rows.Scan(&sum.ID, &sum.Initiator, &sum.Algorithm, &sum.N, &seed, &sum.Steps, &sum.Hash); err != nil {
			return nil, fmt.Errorf("list recordings: scan: %w", err)
		}
		if sum.Seed, err = parseSeed(seed); err != nil {
			return nil, fmt.Errorf("list recordings: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recordings: iterate: %w", err)
	}
	return summaries, nil
}

// DeleteRecording removes a recording and its steps.
func (s *Store) DeleteRecording(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recordings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recording %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete recording %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete recording %s: %w", id, ErrNotFound)
	}
	return nil
}
