package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/workmetrics/hr-analytics-go/internal/domain/analytics"
	"github.com/workmetrics/hr-analytics-go/internal/pkg/database"
)

type analyticsRepositoryImpl struct {
	db database.Querier
}

func NewAnalyticsRepository(db database.Querier) analytics.Repository {
	return &analyticsRepositoryImpl{db: db}
}

// categoryColumns whitelists the groupable columns; the category name is
// interpolated into SQL only through this map.
var categoryColumns = map[analytics.Category]string{
	analytics.CategoryMaritalStatus:     "marital_desc",
	analytics.CategoryDepartment:        "department",
	analytics.CategoryPosition:          "position",
	analytics.CategoryManager:           "manager_name",
	analytics.CategoryState:             "state",
	analytics.CategorySex:               "sex",
	analytics.CategoryRecruitmentSource: "recruitment_source",
	analytics.CategoryPerformanceScore:  "performance_score",
}

func (r *analyticsRepositoryImpl) Summary(ctx context.Context, ref time.Time) (*analytics.SummaryStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN current_status THEN 1 ELSE 0 END), 0) AS current_count,
			COALESCE(SUM(CASE WHEN NOT current_status THEN 1 ELSE 0 END), 0) AS terminated_count,
			ROUND(AVG(salary), 2) AS avg_salary,
			AVG(age)::float8 AS avg_age,
			AVG((COALESCE(date_of_termination, $1::date) - date_of_hire)::float8 / 365.25) AS avg_tenure
		FROM employees
	`

	stats := &analytics.SummaryStats{}
	err := r.db.QueryRow(ctx, query, ref).Scan(
		&stats.Total, &stats.Current, &stats.Terminated,
		&stats.AvgSalary, &stats.AvgAge, &stats.AvgTenure,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary stats: %w", err)
	}
	return stats, nil
}

func (r *analyticsRepositoryImpl) CountByCategory(ctx context.Context, cat analytics.Category) ([]analytics.CategoryCount, error) {
	col, ok := categoryColumns[cat]
	if !ok {
		return nil, fmt.Errorf("%w: %s", analytics.ErrUnknownCategory, cat)
	}

	query := fmt.Sprintf(
		"SELECT %s, COUNT(*) FROM employees GROUP BY %s ORDER BY COUNT(*) DESC, %s ASC",
		col, col, col,
	)
	return r.queryCounts(ctx, query)
}

func (r *analyticsRepositoryImpl) SalaryDistribution(ctx context.Context) ([]analytics.BandCount, error) {
	query := fmt.Sprintf(`
		SELECT %s AS band, COUNT(*)
		FROM employees
		WHERE salary IS NOT NULL
		GROUP BY band
		ORDER BY MIN(salary)
	`, bandCase("salary", analytics.SalaryBands))
	return r.queryBands(ctx, query)
}

func (r *analyticsRepositoryImpl) AgeDistribution(ctx context.Context) ([]analytics.BandCount, error) {
	query := fmt.Sprintf(`
		SELECT %s AS band, COUNT(*)
		FROM employees
		WHERE age IS NOT NULL
		GROUP BY band
		ORDER BY MIN(age)
	`, bandCase("age", analytics.AgeBands))
	return r.queryBands(ctx, query)
}

func (r *analyticsRepositoryImpl) DepartmentStats(ctx context.Context) ([]analytics.DepartmentStats, error) {
	query := `
		SELECT department, ROUND(AVG(salary), 2), COALESCE(SUM(absences), 0), COUNT(*)
		FROM employees
		GROUP BY department
		ORDER BY department ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get department stats: %w", err)
	}
	defer rows.Close()

	var out []analytics.DepartmentStats
	for rows.Next() {
		var stats analytics.DepartmentStats
		if err := rows.Scan(&stats.Department, &stats.AvgSalary, &stats.TotalAbsences, &stats.Headcount); err != nil {
			return nil, fmt.Errorf("failed to scan department stats: %w", err)
		}
		out = append(out, stats)
	}
	return out, rows.Err()
}

func (r *analyticsRepositoryImpl) TerminationReasons(ctx context.Context) ([]analytics.CategoryCount, error) {
	query := `
		SELECT term_reason, COUNT(*)
		FROM employees
		WHERE term_reason <> ''
		GROUP BY term_reason
		ORDER BY COUNT(*) DESC, term_reason ASC
	`
	return r.queryCounts(ctx, query)
}

func (r *analyticsRepositoryImpl) TerminatedByMaritalStatus(ctx context.Context) ([]analytics.CategoryCount, error) {
	query := `
		SELECT marital_desc, COUNT(*)
		FROM employees
		WHERE termd
		GROUP BY marital_desc
		ORDER BY COUNT(*) DESC, marital_desc ASC
	`
	return r.queryCounts(ctx, query)
}

func (r *analyticsRepositoryImpl) AbsencesByPerformance(ctx context.Context) ([]analytics.PerformanceAbsences, error) {
	query := `
		SELECT performance_score, AVG(absences)::float8
		FROM employees
		WHERE absences IS NOT NULL
		GROUP BY performance_score
		ORDER BY performance_score ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get absences by performance: %w", err)
	}
	defer rows.Close()

	var out []analytics.PerformanceAbsences
	for rows.Next() {
		var row analytics.PerformanceAbsences
		if err := rows.Scan(&row.PerformanceScore, &row.AvgAbsences); err != nil {
			return nil, fmt.Errorf("failed to scan absences by performance: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *analyticsRepositoryImpl) SalaryBySex(ctx context.Context) ([]analytics.SexSalary, error) {
	query := `
		SELECT sex, SUM(salary), COUNT(*)
		FROM employees
		GROUP BY sex
		ORDER BY sex ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get salary by sex: %w", err)
	}
	defer rows.Close()

	var out []analytics.SexSalary
	for rows.Next() {
		var row analytics.SexSalary
		if err := rows.Scan(&row.Sex, &row.TotalSalary, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to scan salary by sex: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *analyticsRepositoryImpl) queryCounts(ctx context.Context, query string) ([]analytics.CategoryCount, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get category counts: %w", err)
	}
	defer rows.Close()

	var out []analytics.CategoryCount
	for rows.Next() {
		var c analytics.CategoryCount
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *analyticsRepositoryImpl) queryBands(ctx context.Context, query string) ([]analytics.BandCount, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get band counts: %w", err)
	}
	defer rows.Close()

	var out []analytics.BandCount
	for rows.Next() {
		var b analytics.BandCount
		if err := rows.Scan(&b.Band, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan band count: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// bandCase renders the band table as a SQL CASE expression so the labels
// and boundaries stay single-sourced in the analytics domain.
func bandCase(column string, bands []analytics.Band) string {
	var sb strings.Builder
	sb.WriteString("CASE")
	for _, b := range bands {
		if b.Open {
			fmt.Fprintf(&sb, " ELSE '%s'", b.Label)
		} else {
			fmt.Fprintf(&sb, " WHEN %s < %d THEN '%s'", column, b.Upper, b.Label)
		}
	}
	sb.WriteString(" END")
	return sb.String()
}
