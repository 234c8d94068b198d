package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workmetrics/hr-analytics-go/internal/domain/ingest"
)

var testRef = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

// rawRecord returns a well-formed input record tests tweak per scenario.
func rawRecord(empID string) ingest.RawRecord {
	return ingest.RawRecord{
		Line:              2,
		EmpID:             empID,
		DOB:               "15-03-1990",
		DateOfHire:        "05-07-2011",
		DateOfTermination: "",
		LastReviewDate:    "2019-01-17",
		Salary:            "55000",
		Department:        "Production",
		Position:          "Technician I",
		ManagerName:       "Michael Albert",
		MaritalDesc:       "Single",
		Sex:               "M",
		State:             "MA",
		RecruitmentSource: "LinkedIn",
		TermReason:        "",
		PerformanceScore:  "Fully Meets",
		Absences:          "3",
		Termd:             "0",
	}
}

func TestCleaner_Clean_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cleaner := NewCleaner()
	emps, report, err := cleaner.Clean(ctx, []ingest.RawRecord{rawRecord("1001")}, testRef)
	require.NoError(t, err)
	require.Len(t, emps, 1)

	emp := emps[0]
	assert.Equal(t, int64(1001), emp.EmpID)
	assert.Equal(t, 0, emp.LoadSeq)
	require.NotNil(t, emp.DOB)
	assert.Equal(t, time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC), *emp.DOB)
	require.NotNil(t, emp.DateOfHire)
	assert.Equal(t, time.Date(2011, 7, 5, 0, 0, 0, 0, time.UTC), *emp.DateOfHire)
	assert.Nil(t, emp.DateOfTermination)
	require.NotNil(t, emp.LastReviewDate)
	assert.Equal(t, time.Date(2019, 1, 17, 0, 0, 0, 0, time.UTC), *emp.LastReviewDate)
	require.NotNil(t, emp.Salary)
	assert.True(t, emp.Salary.Equal(decimal.NewFromInt(55000)))
	require.NotNil(t, emp.Absences)
	assert.Equal(t, int64(3), *emp.Absences)
	require.NotNil(t, emp.Termd)
	assert.False(t, *emp.Termd)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, testRef, report.ReferenceDate)
	assert.Equal(t, 1, report.Input)
	assert.Equal(t, 1, report.Cleaned)
	assert.Equal(t, 0, report.Flagged)
	assert.Equal(t, 0, report.Dropped)
	assert.Empty(t, report.Issues)
}

func TestCleaner_Clean_DerivedFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	current := rawRecord("1001") // DOB 15-03-1990, no termination
	former := rawRecord("1002")
	former.DOB = "16-03-1990" // birthday not yet reached at the reference date
	former.DateOfTermination = "19-06-2016"
	former.Termd = "1"

	cleaner := NewCleaner()
	emps, _, err := cleaner.Clean(ctx, []ingest.RawRecord{current, former}, testRef)
	require.NoError(t, err)
	require.Len(t, emps, 2)

	// Birthday on the reference date counts as completed.
	assert.True(t, emps[0].CurrentStatus)
	require.NotNil(t, emps[0].Age)
	assert.Equal(t, int64(34), *emps[0].Age)

	assert.False(t, emps[1].CurrentStatus)
	assert.True(t, emps[1].Terminated())
	require.NotNil(t, emps[1].Age)
	assert.Equal(t, int64(33), *emps[1].Age)
}

func TestCleaner_Clean_FlagsBadDates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rec := rawRecord("1001")
	rec.DOB = "1990-03-15" // ISO order where day-month-year is expected
	rec.LastReviewDate = "17-01-2019"

	cleaner := NewCleaner()
	emps, report, err := cleaner.Clean(ctx, []ingest.RawRecord{rec}, testRef)
	require.NoError(t, err)
	require.Len(t, emps, 1)

	assert.Nil(t, emps[0].DOB)
	assert.Nil(t, emps[0].Age)
	assert.Nil(t, emps[0].LastReviewDate)
	// Record survives for everything that does not depend on the bad fields.
	assert.Equal(t, "Production", emps[0].Department)
	require.NotNil(t, emps[0].Salary)

	assert.Equal(t, 1, report.Cleaned)
	assert.Equal(t, 1, report.Flagged)
	require.Len(t, report.Issues, 2)
	assert.Equal(t, ingest.ColDOB, report.Issues[0].Field)
	assert.Equal(t, "1990-03-15", report.Issues[0].Value)
	assert.Equal(t, ingest.ColLastReviewDate, report.Issues[1].Field)
}

func TestCleaner_Clean_FlagsBadSalaryAndCounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rec := rawRecord("1001")
	rec.Salary = "55k"
	rec.Absences = "three"
	rec.Termd = "yes"

	cleaner := NewCleaner()
	emps, report, err := cleaner.Clean(ctx, []ingest.RawRecord{rec}, testRef)
	require.NoError(t, err)
	require.Len(t, emps, 1)

	assert.Nil(t, emps[0].Salary)
	assert.Nil(t, emps[0].Absences)
	assert.Nil(t, emps[0].Termd)
	assert.Equal(t, 1, report.Flagged)
	assert.Len(t, report.Issues, 3)
}

func TestCleaner_Clean_UnparseableTerminationCountsCurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rec := rawRecord("1001")
	rec.DateOfTermination = "soon"

	cleaner := NewCleaner()
	emps, report, err := cleaner.Clean(ctx, []ingest.RawRecord{rec}, testRef)
	require.NoError(t, err)
	require.Len(t, emps, 1)

	assert.Nil(t, emps[0].DateOfTermination)
	assert.True(t, emps[0].CurrentStatus)
	assert.Equal(t, 1, report.Flagged)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, ingest.ColDateOfTermination, report.Issues[0].Field)
}

func TestCleaner_Clean_DropsUnusableEmpID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	bad := rawRecord("E-100")
	good := rawRecord("1002")

	cleaner := NewCleaner()
	emps, report, err := cleaner.Clean(ctx, []ingest.RawRecord{bad, good}, testRef)
	require.NoError(t, err)
	require.Len(t, emps, 1)

	assert.Equal(t, int64(1002), emps[0].EmpID)
	assert.Equal(t, 0, emps[0].LoadSeq)
	assert.Equal(t, 1, report.Dropped)
	assert.Equal(t, 1, report.Cleaned)
	require.NotEmpty(t, report.Issues)
	assert.Equal(t, ingest.ColEmpID, report.Issues[0].Field)
	assert.Equal(t, "E-100", report.Issues[0].EmpID)
}

func TestCleaner_Clean_DuplicateEmpIDKeepsLast(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	first := rawRecord("1001")
	first.Department = "Production"
	other := rawRecord("1002")
	last := rawRecord("1001")
	last.Department = "IT/IS"

	cleaner := NewCleaner()
	emps, report, err := cleaner.Clean(ctx, []ingest.RawRecord{first, other, last}, testRef)
	require.NoError(t, err)
	require.Len(t, emps, 2)

	// Later duplicate wins but keeps the first occurrence's position.
	assert.Equal(t, int64(1001), emps[0].EmpID)
	assert.Equal(t, "IT/IS", emps[0].Department)
	assert.Equal(t, 0, emps[0].LoadSeq)
	assert.Equal(t, int64(1002), emps[1].EmpID)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, 2, report.Cleaned)
}

func TestCleaner_Clean_RoundsSalaryHalfAwayFromZero(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	up := rawRecord("1001")
	up.Salary = "55000.005"
	down := rawRecord("1002")
	down.Salary = "-0.005"

	cleaner := NewCleaner()
	emps, _, err := cleaner.Clean(ctx, []ingest.RawRecord{up, down}, testRef)
	require.NoError(t, err)
	require.Len(t, emps, 2)

	require.NotNil(t, emps[0].Salary)
	assert.Equal(t, "55000.01", emps[0].Salary.StringFixed(2))
	require.NotNil(t, emps[1].Salary)
	assert.Equal(t, "-0.01", emps[1].Salary.StringFixed(2))
}

func TestCleaner_Clean_FutureDOBFlagged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rec := rawRecord("1001")
	rec.DOB = "15-03-2030"

	cleaner := NewCleaner()
	emps, report, err := cleaner.Clean(ctx, []ingest.RawRecord{rec}, testRef)
	require.NoError(t, err)
	require.Len(t, emps, 1)

	require.NotNil(t, emps[0].DOB)
	assert.Nil(t, emps[0].Age)
	assert.Equal(t, 1, report.Flagged)
}

func TestCleaner_Refresh_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	records := []ingest.RawRecord{rawRecord("1001"), rawRecord("1002")}
	records[1].DateOfTermination = "19-06-2016"

	cleaner := NewCleaner()
	emps, _, err := cleaner.Clean(ctx, records, testRef)
	require.NoError(t, err)

	// Already consistent: nothing to recompute.
	assert.Equal(t, 0, cleaner.Refresh(emps, testRef))

	// A mutated source field must flow back into the derived fields.
	dob := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	emps[0].DOB = &dob
	assert.Equal(t, 1, cleaner.Refresh(emps, testRef))
	require.NotNil(t, emps[0].Age)
	assert.Equal(t, int64(24), *emps[0].Age)

	assert.Equal(t, 0, cleaner.Refresh(emps, testRef))
}

func TestCleaner_Clean_EmptyInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cleaner := NewCleaner()
	emps, report, err := cleaner.Clean(ctx, nil, testRef)
	require.NoError(t, err)
	assert.Empty(t, emps)
	assert.Equal(t, 0, report.Input)
	assert.Equal(t, 0, report.Cleaned)
}
