package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workmetrics/hr-analytics-go/internal/domain/employee"
	"github.com/workmetrics/hr-analytics-go/internal/fixtures"
)

func TestStore_Load_ReplacesTable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewStore()
	require.NoError(t, store.Load(ctx, fixtures.Employees()))
	require.NoError(t, store.Load(ctx, fixtures.Employees()[:2]))

	all, err := store.FirstLoaded(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_Load_RejectsDuplicateEmpID(t *testing.T) {
	t.Parallel()

	store := NewStore()
	records := []employee.Employee{{EmpID: 7}, {EmpID: 7}}
	err := store.Load(context.Background(), records)
	require.ErrorIs(t, err, employee.ErrDuplicateEmpID)
}

func TestStore_FirstLoaded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewStore()
	require.NoError(t, store.Load(ctx, fixtures.Employees()))

	first, err := store.FirstLoaded(ctx, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, int64(1001), first[0].EmpID)
	assert.Equal(t, int64(1002), first[1].EmpID)
	assert.Equal(t, int64(1003), first[2].EmpID)
}

func TestStore_LastByEmpID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewStore()
	require.NoError(t, store.Load(ctx, fixtures.Employees()))

	last, err := store.LastByEmpID(ctx, 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, int64(1005), last[0].EmpID)
	assert.Equal(t, int64(1004), last[1].EmpID)
}

func TestStore_EmptyQueries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewStore()
	first, err := store.FirstLoaded(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, first)

	last, err := store.LastByEmpID(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, last)
}
