package store

import (
	"context"
	"fmt"

	"github.com/roach88/sortscope/internal/ir"
	"github.com/roach88/sortscope/internal/trace"
)

// WriteRecording stores a recording and all of its steps in one
// transaction. Uses ON CONFLICT(id) DO NOTHING for idempotency: writing
// the same recording ID again is a no-op.
func (s *Store) WriteRecording(ctx context.Context, rec *trace.Recording) (err error) {
	initialJSON, err := marshalInitial(rec.Initial)
	if err != nil {
		return fmt.Errorf("write recording: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write recording: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO recordings
		(id, initiator, algorithm, n, seed, initial, step_count, trace_hash, trace_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Initiator,
		rec.Algorithm,
		rec.N,
		formatSeed(rec.Seed),
		initialJSON,
		len(rec.Steps),
		rec.Hash,
		ir.TraceVersion,
	)
	if err != nil {
		return fmt.Errorf("write recording: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write recording: %w", err)
	}
	if inserted == 0 {
		return tx.Commit()
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO steps (recording_id, seq, kind, payload)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write recording: prepare steps: %w", err)
	}
	defer stmt.Close()

	for i, step := range rec.Steps {
		payload, err := marshalStep(step)
		if err != nil {
			return fmt.Errorf("write recording: step %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, i, string(step.Kind()), payload); err != nil {
			return fmt.Errorf("write recording: step %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write recording: commit: %w", err)
	}
	return nil
}
