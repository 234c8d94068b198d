package analytics

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workmetrics/hr-analytics-go/internal/domain/analytics"
	"github.com/workmetrics/hr-analytics-go/internal/fixtures"
	"github.com/workmetrics/hr-analytics-go/internal/repository/memory"
)

var catalogOrder = []string{
	"total_employees", "current_employees", "terminated_employees",
	"average_salary", "average_age", "average_tenure_years",
	"attrition_rate", "count_by_marital_status", "count_by_department",
	"count_by_position", "count_by_manager", "count_by_state",
	"count_by_sex", "count_by_recruitment_source",
	"count_by_performance_score", "salary_distribution", "age_distribution",
	"average_salary_by_department", "absences_by_department",
	"termination_reasons", "terminated_by_marital_status",
	"average_absences_by_performance_score", "salary_by_sex",
	"first_employees", "last_employees_by_id",
}

func newService(t *testing.T, records bool) analytics.Service {
	t.Helper()
	store := memory.NewStore()
	if records {
		require.NoError(t, store.Load(context.Background(), fixtures.Employees()))
	}
	return NewAnalyticsService(memory.NewAnalyticsRepository(store), store)
}

func runCatalog(t *testing.T, records bool) *analytics.Catalog {
	t.Helper()
	cat, err := newService(t, records).RunCatalog(context.Background(), fixtures.ReferenceDate)
	require.NoError(t, err)
	return cat
}

func TestRunCatalog_Order(t *testing.T) {
	t.Parallel()

	cat := runCatalog(t, true)
	require.Len(t, cat.Results, len(catalogOrder))
	for i, name := range catalogOrder {
		assert.Equal(t, name, cat.Results[i].Name)
	}
	assert.Equal(t, fixtures.ReferenceDate, cat.ReferenceDate)
}

func TestRunCatalog_Scalars(t *testing.T) {
	t.Parallel()

	cat := runCatalog(t, true)

	total := cat.Result("total_employees")
	require.NotNil(t, total)
	require.Len(t, total.Rows, 1)
	assert.Equal(t, int64(5), total.Rows[0]["total"])

	assert.Equal(t, int64(3), cat.Result("current_employees").Rows[0]["total"])
	assert.Equal(t, int64(2), cat.Result("terminated_employees").Rows[0]["total"])

	attrition := cat.Result("attrition_rate")
	require.Len(t, attrition.Rows, 1)
	assert.InDelta(t, 40.0, attrition.Rows[0]["attrition_rate"], 1e-9)

	avgAge := cat.Result("average_age")
	assert.InDelta(t, 34.75, avgAge.Rows[0]["average_age"], 1e-9)
}

func TestRunCatalog_Breakdowns(t *testing.T) {
	t.Parallel()

	cat := runCatalog(t, true)

	dept := cat.Result("count_by_department")
	require.NotNil(t, dept)
	assert.Equal(t, []string{"department", "total"}, dept.Columns)
	require.Len(t, dept.Rows, 4)
	assert.Equal(t, analytics.Row{"department": "Production", "total": int64(2)}, dept.Rows[0])
	// The empty department string groups on its own.
	assert.Equal(t, analytics.Row{"department": "", "total": int64(1)}, dept.Rows[1])

	bands := cat.Result("salary_distribution")
	require.Len(t, bands.Rows, 4)
	assert.Equal(t, analytics.Row{"salary_band": "<30K", "total": int64(1)}, bands.Rows[0])

	byMarital := cat.Result("terminated_by_marital_status")
	require.Len(t, byMarital.Rows, 1)
	assert.Equal(t, analytics.Row{"marital_status": "Married", "total": int64(2)}, byMarital.Rows[0])
}

func TestRunCatalog_Samples(t *testing.T) {
	t.Parallel()

	cat := runCatalog(t, true)

	first := cat.Result("first_employees")
	require.NotNil(t, first)
	require.Len(t, first.Rows, 5)
	assert.Equal(t, int64(1001), first.Rows[0]["emp_id"])
	assert.Equal(t, "1990-03-15", first.Rows[0]["dob"])
	assert.Equal(t, "55000.00", first.Rows[0]["salary"])
	assert.Nil(t, first.Rows[0]["date_of_termination"])

	// 1004 carries nothing but categoricals; its optional cells are null.
	assert.Nil(t, first.Rows[3]["dob"])
	assert.Nil(t, first.Rows[3]["salary"])
	assert.Nil(t, first.Rows[3]["absences"])
	assert.Equal(t, true, first.Rows[3]["current_status"])

	last := cat.Result("last_employees_by_id")
	require.Len(t, last.Rows, 5)
	assert.Equal(t, int64(1005), last.Rows[0]["emp_id"])
	assert.Equal(t, int64(1001), last.Rows[4]["emp_id"])
}

func TestRunCatalog_EmptyTable(t *testing.T) {
	t.Parallel()

	cat := runCatalog(t, false)
	require.Len(t, cat.Results, len(catalogOrder))

	assert.Equal(t, int64(0), cat.Result("total_employees").Rows[0]["total"])
	assert.InDelta(t, 0.0, cat.Result("attrition_rate").Rows[0]["attrition_rate"], 1e-9)
	assert.Nil(t, cat.Result("average_salary").Rows[0]["average_salary"])
	assert.Nil(t, cat.Result("average_age").Rows[0]["average_age"])
	assert.Empty(t, cat.Result("count_by_department").Rows)
	assert.Empty(t, cat.Result("salary_distribution").Rows)
	assert.Empty(t, cat.Result("first_employees").Rows)
}

func TestRunCatalog_MarshalsNullsAndDecimals(t *testing.T) {
	t.Parallel()

	cat := runCatalog(t, false)
	raw, err := json.Marshal(cat.Result("average_salary"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"average_salary":null`)
}

// The catalog is scheduled concurrently; repeated runs must come out
// identical to each other (and therefore to a sequential execution).
func TestRunCatalog_Deterministic(t *testing.T) {
	t.Parallel()

	svc := newService(t, true)
	first, err := svc.RunCatalog(context.Background(), fixtures.ReferenceDate)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := svc.RunCatalog(context.Background(), fixtures.ReferenceDate)
		require.NoError(t, err)
		assert.Equal(t, first.Results, again.Results)
	}
}
