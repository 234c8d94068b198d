package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Category selects one of the categorical grouping fields. The value
// doubles as the output column name of its breakdown.
type Category string

const (
	CategoryMaritalStatus     Category = "marital_status"
	CategoryDepartment        Category = "department"
	CategoryPosition          Category = "position"
	CategoryManager           Category = "manager_name"
	CategoryState             Category = "state"
	CategorySex               Category = "sex"
	CategoryRecruitmentSource Category = "recruitment_source"
	CategoryPerformanceScore  Category = "performance_score"
)

// Categories returns the grouping fields in catalog order.
func Categories() []Category {
	return []Category{
		CategoryMaritalStatus,
		CategoryDepartment,
		CategoryPosition,
		CategoryManager,
		CategoryState,
		CategorySex,
		CategoryRecruitmentSource,
		CategoryPerformanceScore,
	}
}

// SummaryStats combines the scalar aggregates of one run in a single query.
// Averages are nil when no record carries the underlying field.
type SummaryStats struct {
	Total      int64
	Current    int64
	Terminated int64
	AvgSalary  *decimal.Decimal
	AvgAge     *float64
	AvgTenure  *float64
}

// CategoryCount is one group of a group-by-count breakdown. An empty Key is
// a legitimate group, not an absent one.
type CategoryCount struct {
	Key   string
	Count int64
}

// BandCount is one bucket of a salary or age distribution.
type BandCount struct {
	Band  string
	Count int64
}

// DepartmentStats carries the per-department aggregates of a single query.
// AvgSalary is nil when no record in the group has a parseable salary.
type DepartmentStats struct {
	Department    string
	AvgSalary     *decimal.Decimal
	TotalAbsences int64
	Headcount     int64
}

// PerformanceAbsences is the average absence count for one performance
// score, over records whose Absences parsed.
type PerformanceAbsences struct {
	PerformanceScore string
	AvgAbsences      float64
}

// SexSalary sums salaries and counts records per Sex value. TotalSalary is
// nil when no record in the group has a parseable salary.
type SexSalary struct {
	Sex         string
	TotalSalary *decimal.Decimal
	Count       int64
}

// Repository answers the read-only aggregate queries behind the catalog.
// Every method is a pure read; none mutates the store.
type Repository interface {
	// Summary returns counts, averages and tenure in a single query.
	// Tenure runs from DateOfHire to DateOfTermination for former staff
	// and to ref for current staff, in years of 365.25 days; records
	// missing the needed dates are excluded.
	Summary(ctx context.Context, ref time.Time) (*SummaryStats, error)

	// CountByCategory returns the group-by-count breakdown for cat,
	// ordered by count descending then key ascending.
	CountByCategory(ctx context.Context, cat Category) ([]CategoryCount, error)

	// SalaryDistribution counts records per salary band, in band order.
	// Empty bands produce no row.
	SalaryDistribution(ctx context.Context) ([]BandCount, error)

	// AgeDistribution counts records per age band, in band order.
	AgeDistribution(ctx context.Context) ([]BandCount, error)

	// DepartmentStats returns per-department salary and absence
	// aggregates, ordered by department ascending.
	DepartmentStats(ctx context.Context) ([]DepartmentStats, error)

	// TerminationReasons counts records per non-empty TermReason.
	TerminationReasons(ctx context.Context) ([]CategoryCount, error)

	// TerminatedByMaritalStatus counts Termd records per MaritalDesc.
	TerminatedByMaritalStatus(ctx context.Context) ([]CategoryCount, error)

	// AbsencesByPerformance averages Absences per PerformanceScore.
	AbsencesByPerformance(ctx context.Context) ([]PerformanceAbsences, error)

	// SalaryBySex sums salaries and counts records per Sex value.
	SalaryBySex(ctx context.Context) ([]SexSalary, error)
}
