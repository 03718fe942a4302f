package sync

import "time"

// Status is the engine's coarse run state.
type Status string

const (
	// StatusIdle means no run has happened yet.
	StatusIdle Status = "idle"
	// StatusSyncing means a run is in progress.
	StatusSyncing Status = "syncing"
	// StatusSuccess means the last run completed fully.
	StatusSuccess Status = "success"
	// StatusError means the last run aborted; Err carries the message.
	StatusError Status = "error"
)

// SyncState is the immutable snapshot published to subscribers after every
// transition. LastSync is the time of the last fully successful run (nil
// before the first one) and survives restarts via the sync_meta table.
type SyncState struct {
	Status   Status
	LastSync *time.Time
	Err      string
}

// Tally counts per-record outcomes of one push routine (or one whole run
// when aggregated by the engine).
type Tally struct {
	Synced    int
	Failed    int
	Conflicts int
}

func (t *Tally) add(o Tally) {
	t.Synced += o.Synced
	t.Failed += o.Failed
	t.Conflicts += o.Conflicts
}
