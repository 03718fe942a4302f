// Package sync implements the offline synchronization engine.
//
// # Overview
//
// The engine reconciles the local SQLite replica with the remote store under
// intermittent connectivity. Three kinds of data flow through it:
//
//   - sermon notes are authored on this device, so on divergence the local
//     copy always overwrites the remote one;
//   - attendance marks are shared between staff devices and converge by
//     last-write-wins on UpdatedAt;
//   - members, announcements and sermons are a read-only reference cache,
//     overwritten wholesale from the remote store.
//
// Engine.SyncAll drives one run: it gates on a connectivity probe and a
// single-flight guard, pushes pending notes and attendance marks
// concurrently, pulls the reference tables, and publishes each state
// transition to subscribers. Per-record push failures are tallied and left
// pending for the next run; a pull failure aborts the run with status error.
//
// Deletion does not propagate in either direction: there is no tombstone
// mechanism, so a locally deleted row is simply forgotten and remotely
// deleted reference rows stay cached until they age out of the recency
// window. This is a known limitation of the data model, not of this package.
package sync
