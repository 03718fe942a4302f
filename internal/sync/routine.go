package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/parishkeep/parishsync/internal/logging"
)

// Probe reports whether the remote store is reachable right now.
// Implemented by netx.HTTPProbe.
type Probe interface {
	Reachable(ctx context.Context) bool
}

// LocalTable is the local-store surface a push routine needs: the pending
// queue plus the two single-row mutations that settle a record's fate.
type LocalTable[T Record] interface {
	ListPending(ctx context.Context) ([]T, error)
	MarkSynced(ctx context.Context, id string, serverUpdatedAt time.Time) error
	ReplaceFromRemote(ctx context.Context, rec T, serverUpdatedAt time.Time) error
}

// RemoteTable is the remote-store surface: point lookup and idempotent
// upsert keyed by the client-generated id.
type RemoteTable[T Record] interface {
	GetByID(ctx context.Context, id string) (*T, error)
	Upsert(ctx context.Context, rec T) (time.Time, error)
}

// Routine is the engine-facing, non-generic view of a push routine.
type Routine interface {
	Name() string
	Sync(ctx context.Context) (Tally, error)
}

// PendingSyncer pushes one table's pending rows to the remote store,
// resolving each against its remote counterpart with the table's Policy.
// One instance per table; the retry/isolation loop is shared.
type PendingSyncer[T Record] struct {
	name   string
	local  LocalTable[T]
	remote RemoteTable[T]
	policy Policy[T]
	probe  Probe
	log    logging.Logger
}

func NewPendingSyncer[T Record](name string, local LocalTable[T], remote RemoteTable[T],
	policy Policy[T], probe Probe, log logging.Logger) *PendingSyncer[T] {
	return &PendingSyncer[T]{
		name:   name,
		local:  local,
		remote: remote,
		policy: policy,
		probe:  probe,
		log:    log.With("table", name),
	}
}

func (s *PendingSyncer[T]) Name() string { return s.name }

// Sync processes every pending row once and returns the tally.
//
// An unreachable remote is a deferred no-op, not an error: the zero tally is
// returned and the rows stay pending. A failure on one row is counted and
// the loop continues; the row stays pending and is retried on the next run.
// Only a failure to read the pending queue itself aborts the routine.
//
// Re-running with no new local mutations is idempotent: once every row is
// synced the pending queue is empty and the routine does nothing.
func (s *PendingSyncer[T]) Sync(ctx context.Context) (Tally, error) {
	if !s.probe.Reachable(ctx) {
		s.log.Debug(ctx, "remote unreachable, push deferred")
		return Tally{}, nil
	}

	rows, err := s.local.ListPending(ctx)
	if err != nil {
		return Tally{}, fmt.Errorf("failed to list pending rows: %w", err)
	}

	var tally Tally
	for _, row := range rows {
		if err := s.syncOne(ctx, row, &tally); err != nil {
			tally.Failed++
			s.log.Warn(ctx, "record sync failed, will retry next run",
				"id", row.RecordID(), "error", err)
		}
	}
	return tally, nil
}

func (s *PendingSyncer[T]) syncOne(ctx context.Context, row T, tally *Tally) error {
	remote, err := s.remote.GetByID(ctx, row.RecordID())
	if err != nil {
		return err
	}

	switch s.policy.Resolve(row, remote) {
	case ActionInsert, ActionPushLocal:
		stamp, err := s.remote.Upsert(ctx, row)
		if err != nil {
			return err
		}
		if err := s.local.MarkSynced(ctx, row.RecordID(), stamp); err != nil {
			return err
		}
		tally.Synced++

	case ActionOverwriteLocal:
		if err := s.local.ReplaceFromRemote(ctx, *remote, (*remote).ModifiedAt()); err != nil {
			return err
		}
		s.log.Debug(ctx, "remote copy newer, local row overwritten", "id", row.RecordID())
		tally.Conflicts++
	}
	return nil
}
