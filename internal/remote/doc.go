// Package remote implements the client for the authoritative remote row
// store.
//
// # Overview
//
// The package provides:
//  1. A low-level Client speaking the row store's REST conventions:
//     SelectRows (equality/range filters with limit) and UpsertRow
//     (idempotent insert-or-replace keyed by client-generated id).
//  2. A TokenSource that keeps the access token fresh, refreshing it
//     proactively near expiry and on demand after a 401.
//  3. Typed per-table stores (NoteStore, AttendanceStore, MemberStore,
//     AnnouncementStore, SermonStore) consumed by the sync engine.
//
// # Error Handling
//
// Failures are exposed as sentinel errors matchable with errors.Is:
// ErrUnavailable (transport failure or exhausted retries — retry later),
// ErrUnauthorized (credentials rejected after refresh), and ErrRejected
// (the server refused the payload — retrying will not help).
//
// # Concurrency & Contexts
//
// Client and TokenSource are safe for concurrent use. All operations accept
// context.Context; each call is additionally bounded by the client timeout.
package remote
