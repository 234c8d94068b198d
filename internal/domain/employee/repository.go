package employee

import "context"

// Store holds the loaded employee table. A pipeline run owns the store
// exclusively for its duration; no external writer mutates it concurrently.
type Store interface {
	// Load replaces the whole table with records, atomically per backend.
	Load(ctx context.Context, records []Employee) error

	// FirstLoaded returns up to n records in load order.
	FirstLoaded(ctx context.Context, n int) ([]Employee, error)

	// LastByEmpID returns up to n records ordered by EmpID descending.
	LastByEmpID(ctx context.Context, n int) ([]Employee, error)
}
