package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/parishkeep/parishsync/internal/logging"
	"github.com/parishkeep/parishsync/internal/store/meta"
)

// PullRunner is the engine-facing view of the reference-cache pull.
type PullRunner interface {
	Pull(ctx context.Context, scopeID string) error
}

// Engine orchestrates one sync run: connectivity gate, single-flight guard,
// concurrent push routines, reference pull, and state publication. Construct
// one per process and inject it where sync can be triggered or observed.
type Engine struct {
	probe    Probe
	routines []Routine
	puller   PullRunner
	meta     meta.Repository
	log      logging.Logger
	now      func() time.Time

	// running is the single-flight guard. Two truly parallel SyncAll calls
	// would otherwise double-process the same pending rows.
	running atomic.Bool

	mu      stdsync.Mutex
	state   SyncState
	subs    map[int]func(SyncState)
	nextSub int
}

func NewEngine(probe Probe, routines []Routine, puller PullRunner,
	metaRepo meta.Repository, log logging.Logger) *Engine {
	return &Engine{
		probe:    probe,
		routines: routines,
		puller:   puller,
		meta:     metaRepo,
		log:      log,
		now:      time.Now,
		state:    SyncState{Status: StatusIdle},
		subs:     make(map[int]func(SyncState)),
	}
}

// RestoreLastSync loads the persisted last-sync time into the initial state
// so the UI can show "last synced at T" across restarts. A missing key is
// not an error.
func (e *Engine) RestoreLastSync(ctx context.Context) error {
	v, err := e.meta.Get(ctx, meta.KeyLastSync)
	if err != nil {
		return err
	}
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return fmt.Errorf("malformed %s value %q: %w", meta.KeyLastSync, v, err)
	}
	e.setState(func(s *SyncState) { s.LastSync = &t })
	return nil
}

// State returns the current snapshot.
func (e *Engine) State() SyncState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Subscribe registers fn to be called with every published snapshot and
// returns a cancel function. fn runs on the syncing goroutine and must not
// block.
func (e *Engine) Subscribe(fn func(SyncState)) (cancel func()) {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

// setState mutates the snapshot under the lock, then notifies subscribers
// outside it so a callback may call State or Subscribe.
func (e *Engine) setState(mut func(*SyncState)) {
	e.mu.Lock()
	mut(&e.state)
	snap := e.state
	fns := make([]func(SyncState), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// SyncAll runs one full sync pass and returns when it settles. Callers
// observe progress and outcome via the publisher, not a return value; UIs
// typically invoke it from their own goroutine.
//
// A call while a run is in flight is dropped with a log line. A call while
// the remote store is unreachable is a deferred no-op: nothing is written
// and no state transition is published. scopeID selects the congregation
// whose reference data is pulled; when empty the pull is skipped.
func (e *Engine) SyncAll(ctx context.Context, scopeID string) {
	if !e.running.CompareAndSwap(false, true) {
		e.log.Info(ctx, "sync already in progress, invocation dropped")
		return
	}
	defer e.running.Store(false)

	if !e.probe.Reachable(ctx) {
		e.log.Info(ctx, "remote store unreachable, sync deferred")
		return
	}

	e.setState(func(s *SyncState) {
		s.Status = StatusSyncing
		s.Err = ""
	})

	var (
		total   Tally
		tallyMu stdsync.Mutex
	)
	g, gctx := errgroup.WithContext(ctx)

	// Push routines touch disjoint tables, so they run concurrently.
	for _, r := range e.routines {
		g.Go(func() error {
			t, err := r.Sync(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", r.Name(), err)
			}
			tallyMu.Lock()
			total.add(t)
			tallyMu.Unlock()
			return nil
		})
	}

	// The pull is issued after the pushes are launched but runs alongside
	// them. Pulled reference rows never depend on pushed rows, so observing
	// this run's own pushes is harmless.
	if scopeID != "" && e.puller != nil {
		g.Go(func() error {
			if err := e.puller.Pull(gctx, scopeID); err != nil {
				return fmt.Errorf("pull: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.log.Error(ctx, "sync run failed", "error", err)
		e.setState(func(s *SyncState) {
			s.Status = StatusError
			s.Err = err.Error()
		})
		return
	}

	now := e.now().UTC()
	if err := e.meta.Set(ctx, meta.KeyLastSync, now.Format(time.RFC3339Nano)); err != nil {
		// The run itself succeeded; losing the stamp only affects the label
		// shown after a restart.
		e.log.Warn(ctx, "failed to persist last-sync time", "error", err)
	}
	e.setState(func(s *SyncState) {
		s.Status = StatusSuccess
		s.LastSync = &now
		s.Err = ""
	})
	e.log.Info(ctx, "sync finished",
		"synced", total.Synced, "failed", total.Failed, "conflicts", total.Conflicts)
}
