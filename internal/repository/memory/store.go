// Package memory implements the employee store and the analytics repository
// over a plain slice with explicit accumulator maps. It is the reference
// backend: the SQL backends must match its catalog output row for row.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/workmetrics/hr-analytics-go/internal/domain/employee"
)

type Store struct {
	mu      sync.RWMutex
	records []employee.Employee
}

func NewStore() *Store {
	return &Store{}
}

// Load replaces the whole table. The incoming slice is copied so later
// mutation by the caller cannot leak into the store.
func (s *Store) Load(ctx context.Context, records []employee.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	seen := make(map[int64]bool, len(records))
	for _, r := range records {
		if seen[r.EmpID] {
			return fmt.Errorf("failed to load employee %d: %w", r.EmpID, employee.ErrDuplicateEmpID)
		}
		seen[r.EmpID] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]employee.Employee, len(records))
	copy(s.records, records)
	return nil
}

func (s *Store) FirstLoaded(ctx context.Context, n int) ([]employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := s.snapshot()
	sort.Slice(out, func(i, j int) bool { return out[i].LoadSeq < out[j].LoadSeq })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *Store) LastByEmpID(ctx context.Context, n int) ([]employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := s.snapshot()
	sort.Slice(out, func(i, j int) bool { return out[i].EmpID > out[j].EmpID })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// snapshot copies the table under the read lock so aggregate loops never
// observe a concurrent Load.
func (s *Store) snapshot() []employee.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]employee.Employee, len(s.records))
	copy(out, s.records)
	return out
}
