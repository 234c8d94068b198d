package analytics

import (
	"context"
	"time"
)

// Service executes the fixed aggregate catalog.
type Service interface {
	// RunCatalog runs every catalog query against the store and returns
	// the named result sets in catalog order. Queries may run
	// concurrently; the outcome is identical to sequential execution.
	RunCatalog(ctx context.Context, ref time.Time) (*Catalog, error)
}
