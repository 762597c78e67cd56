// Package entity provides the embeddable persistence base types shared
// by services: creation/update audit stamps, soft deletion and
// optimistic-lock versioning, together with squirrel scope helpers that
// keep the matching SQL clauses in one place.
package entity
