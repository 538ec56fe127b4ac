// Package store defines the credential store used by the authenticated client:
// a small key-value contract (Get/Set/Clear) plus an atomic credential write.
//
// It ships with an in-memory implementation for tests and short-lived tools, a
// JSON file store backed by afs, and an encrypted variant backed by scy for
// hosts where tokens must not sit on disk in plain text.
package store
