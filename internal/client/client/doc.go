// Package client contains the building blocks for talking to the quicksh
// file-sharing service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the five service operations: Upload, Download, Delete, ListOwned and
//     ValidateSet.
//  2. A concrete REST implementation (see HTTPClient) that runs every call
//     under a bounded timeout, tags requests with the persistent client ID,
//     and maps failures to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable for transport failures, ErrCodeNotFound for
// unknown or expired codes, ErrRejected for application-level rejections
// (the server-provided reason is appended), and ErrLocalDataNotAvailable for
// a broken local database. Local validation failures surface as
// models.ErrInvalidCode before any network activity.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation; Download keeps its deadline armed
// until the returned body is closed.
package client
