package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/workmetrics/hr-analytics-go/internal/domain/analytics"
	"github.com/workmetrics/hr-analytics-go/internal/domain/employee"
)

const sampleSize = 5

// catalogSize is the number of result sets one run produces.
const catalogSize = 25

// categoryResults pins the result-set name of each categorical breakdown,
// in catalog order.
var categoryResults = []struct {
	cat  analytics.Category
	name string
}{
	{analytics.CategoryMaritalStatus, "count_by_marital_status"},
	{analytics.CategoryDepartment, "count_by_department"},
	{analytics.CategoryPosition, "count_by_position"},
	{analytics.CategoryManager, "count_by_manager"},
	{analytics.CategoryState, "count_by_state"},
	{analytics.CategorySex, "count_by_sex"},
	{analytics.CategoryRecruitmentSource, "count_by_recruitment_source"},
	{analytics.CategoryPerformanceScore, "count_by_performance_score"},
}

// employeeColumns is the column order of the sample result sets.
var employeeColumns = []string{
	"emp_id", "dob", "date_of_hire", "date_of_termination",
	"last_review_date", "salary", "department", "position", "manager_name",
	"marital_desc", "sex", "state", "recruitment_source", "term_reason",
	"performance_score", "absences", "termd", "current_status", "age",
}

type AnalyticsServiceImpl struct {
	repo  analytics.Repository
	store employee.Store
}

func NewAnalyticsService(repo analytics.Repository, store employee.Store) analytics.Service {
	return &AnalyticsServiceImpl{repo: repo, store: store}
}

// RunCatalog executes the fixed catalog. The queries are mutually
// independent pure reads, so they fan out on an errgroup; every goroutine
// writes only its own slots, which keeps concurrent execution
// observationally identical to sequential execution.
func (s *AnalyticsServiceImpl) RunCatalog(ctx context.Context, ref time.Time) (*analytics.Catalog, error) {
	results := make([]analytics.ResultSet, catalogSize)
	g, gCtx := errgroup.WithContext(ctx)

	// Slots 0-6: the scalar aggregates plus the attrition rate, all from
	// one summary query.
	g.Go(func() error {
		stats, err := s.repo.Summary(gCtx, ref)
		if err != nil {
			return err
		}
		results[0] = scalarResult("total_employees", "total", stats.Total)
		results[1] = scalarResult("current_employees", "total", stats.Current)
		results[2] = scalarResult("terminated_employees", "total", stats.Terminated)
		results[3] = scalarResult("average_salary", "average_salary", decimalValue(stats.AvgSalary))
		results[4] = scalarResult("average_age", "average_age", floatValue(stats.AvgAge))
		results[5] = scalarResult("average_tenure_years", "average_tenure_years", floatValue(stats.AvgTenure))
		results[6] = scalarResult("attrition_rate", "attrition_rate", attritionRate(stats.Terminated, stats.Total))
		return nil
	})

	// Slots 7-14: the categorical breakdowns.
	for i, cr := range categoryResults {
		slot := 7 + i
		g.Go(func() error {
			counts, err := s.repo.CountByCategory(gCtx, cr.cat)
			if err != nil {
				return err
			}
			results[slot] = countResult(cr.name, string(cr.cat), counts)
			return nil
		})
	}

	// Slots 15-16: the salary and age distributions.
	g.Go(func() error {
		bands, err := s.repo.SalaryDistribution(gCtx)
		if err != nil {
			return err
		}
		results[15] = bandResult("salary_distribution", "salary_band", bands)
		return nil
	})
	g.Go(func() error {
		bands, err := s.repo.AgeDistribution(gCtx)
		if err != nil {
			return err
		}
		results[16] = bandResult("age_distribution", "age_band", bands)
		return nil
	})

	// Slots 17-18: both department result sets from one query.
	g.Go(func() error {
		stats, err := s.repo.DepartmentStats(gCtx)
		if err != nil {
			return err
		}
		salary := analytics.ResultSet{
			Name:    "average_salary_by_department",
			Columns: []string{"department", "average_salary"},
		}
		absences := analytics.ResultSet{
			Name:    "absences_by_department",
			Columns: []string{"department", "total_absences"},
		}
		for _, d := range stats {
			salary.Rows = append(salary.Rows, analytics.Row{
				"department":     d.Department,
				"average_salary": decimalValue(d.AvgSalary),
			})
			absences.Rows = append(absences.Rows, analytics.Row{
				"department":     d.Department,
				"total_absences": d.TotalAbsences,
			})
		}
		results[17] = salary
		results[18] = absences
		return nil
	})

	// Slots 19-22: the termination and gender analyses.
	g.Go(func() error {
		reasons, err := s.repo.TerminationReasons(gCtx)
		if err != nil {
			return err
		}
		results[19] = countResult("termination_reasons", "term_reason", reasons)
		return nil
	})
	g.Go(func() error {
		counts, err := s.repo.TerminatedByMaritalStatus(gCtx)
		if err != nil {
			return err
		}
		results[20] = countResult("terminated_by_marital_status", "marital_status", counts)
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.AbsencesByPerformance(gCtx)
		if err != nil {
			return err
		}
		rs := analytics.ResultSet{
			Name:    "average_absences_by_performance_score",
			Columns: []string{"performance_score", "average_absences"},
		}
		for _, r := range rows {
			rs.Rows = append(rs.Rows, analytics.Row{
				"performance_score": r.PerformanceScore,
				"average_absences":  r.AvgAbsences,
			})
		}
		results[21] = rs
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.SalaryBySex(gCtx)
		if err != nil {
			return err
		}
		rs := analytics.ResultSet{
			Name:    "salary_by_sex",
			Columns: []string{"sex", "total_salary", "total"},
		}
		for _, r := range rows {
			rs.Rows = append(rs.Rows, analytics.Row{
				"sex":          r.Sex,
				"total_salary": decimalValue(r.TotalSalary),
				"total":        r.Count,
			})
		}
		results[22] = rs
		return nil
	})

	// Slots 23-24: the record samples.
	g.Go(func() error {
		emps, err := s.store.FirstLoaded(gCtx, sampleSize)
		if err != nil {
			return err
		}
		results[23] = sampleResult("first_employees", emps)
		return nil
	})
	g.Go(func() error {
		emps, err := s.store.LastByEmpID(gCtx, sampleSize)
		if err != nil {
			return err
		}
		results[24] = sampleResult("last_employees_by_id", emps)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &analytics.Catalog{
		GeneratedAt:   time.Now().UTC(),
		ReferenceDate: ref,
		Results:       results,
	}, nil
}

// attritionRate is the share of former staff in percent, defined as 0 for
// an empty table.
func attritionRate(terminated, total int64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(terminated) / float64(total)
}

func scalarResult(name, column string, value any) analytics.ResultSet {
	return analytics.ResultSet{
		Name:    name,
		Columns: []string{column},
		Rows:    []analytics.Row{{column: value}},
	}
}

func countResult(name, keyColumn string, counts []analytics.CategoryCount) analytics.ResultSet {
	rs := analytics.ResultSet{Name: name, Columns: []string{keyColumn, "total"}}
	for _, c := range counts {
		rs.Rows = append(rs.Rows, analytics.Row{keyColumn: c.Key, "total": c.Count})
	}
	return rs
}

func bandResult(name, bandColumn string, bands []analytics.BandCount) analytics.ResultSet {
	rs := analytics.ResultSet{Name: name, Columns: []string{bandColumn, "total"}}
	for _, b := range bands {
		rs.Rows = append(rs.Rows, analytics.Row{bandColumn: b.Band, "total": b.Count})
	}
	return rs
}

func sampleResult(name string, emps []employee.Employee) analytics.ResultSet {
	rs := analytics.ResultSet{Name: name, Columns: employeeColumns}
	for i := range emps {
		rs.Rows = append(rs.Rows, employeeRow(&emps[i]))
	}
	return rs
}

func employeeRow(e *employee.Employee) analytics.Row {
	return analytics.Row{
		"emp_id":              e.EmpID,
		"dob":                 dateValue(e.DOB),
		"date_of_hire":        dateValue(e.DateOfHire),
		"date_of_termination": dateValue(e.DateOfTermination),
		"last_review_date":    dateValue(e.LastReviewDate),
		"salary":              decimalString(e.Salary),
		"department":          e.Department,
		"position":            e.Position,
		"manager_name":        e.ManagerName,
		"marital_desc":        e.MaritalDesc,
		"sex":                 e.Sex,
		"state":               e.State,
		"recruitment_source":  e.RecruitmentSource,
		"term_reason":         e.TermReason,
		"performance_score":   e.PerformanceScore,
		"absences":            int64Value(e.Absences),
		"termd":               boolValue(e.Termd),
		"current_status":      e.CurrentStatus,
		"age":                 int64Value(e.Age),
	}
}

// The value helpers collapse typed nil pointers to untyped nil so result
// rows marshal missing cells as JSON null.

func decimalValue(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}

func decimalString(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.StringFixed(2)
}

func dateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func floatValue(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func int64Value(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}

func boolValue(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
