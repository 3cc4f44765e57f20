// Package workspace defines the boundary to the external workspace tool a
// structured note is mirrored into. Sync is best effort: failures here never
// block note visibility.
package workspace

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable marks a transient failure; the sync worker retries it.
	ErrUnavailable = errors.New("workspace: temporarily unavailable")

	// ErrRejected marks a permanent failure (payload rejected by the target's
	// validation); never retried.
	ErrRejected = errors.New("workspace: payload rejected")
)

// Page is the classified note flattened into the shape the workspace consumes.
type Page struct {
	IdempotencyKey string // the note id; republishing the same key must not duplicate
	ExternalRef    string // previously recorded external id, empty on first publish
	Title          string
	Category       string
	Status         string
	TargetDate     string // YYYY-MM-DD, empty when absent
	Tags           []string
	Content        string // markdown body
}

// Publisher mirrors a page into the external workspace and returns its external
// reference.
type Publisher interface {
	Publish(ctx context.Context, page Page) (string, error)
}
