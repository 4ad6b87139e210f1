// Package session coordinates concurrent access to dialog sessions.
//
// The Manager wraps a ports.SessionStore with per-session-id locking so
// in-flight requests for the same dialog serialize while unrelated
// dialogs proceed in parallel. An optional DistributedLocker extends the
// guarantee across replicas.
package session
