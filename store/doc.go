// Package store provides database plumbing shared by services: connection
// helpers for PostgreSQL and SQLite, driver-aware error classification with
// retry support, sentinel mapping for constraint violations, and an append-only
// audit log repository.
package store
