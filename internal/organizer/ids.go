package organizer

import "github.com/google/uuid"

// uuidNew generates an opaque run-item identifier. Journal entry IDs never
// need to be predictable or sortable, only unique, so a plain random UUID
// is all that's needed.
func uuidNew() string { return uuid.NewString() }

// NewRunID generates an opaque run header identifier, for callers
// orchestrating a run (internal/pipeline) before any items exist to derive
// one from.
func NewRunID() string { return uuid.NewString() }
