package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/workmetrics/hr-analytics-go/internal/domain/analytics"
	"github.com/workmetrics/hr-analytics-go/internal/domain/employee"
)

const daysPerYear = 365.25

type analyticsRepositoryImpl struct {
	store *Store
}

func NewAnalyticsRepository(store *Store) analytics.Repository {
	return &analyticsRepositoryImpl{store: store}
}

func (r *analyticsRepositoryImpl) Summary(ctx context.Context, ref time.Time) (*analytics.SummaryStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := &analytics.SummaryStats{}
	salarySum := decimal.Zero
	var salaryN, ageSum, ageN int64
	var tenureSum float64
	var tenureN int64

	for _, e := range r.store.snapshot() {
		stats.Total++
		if e.CurrentStatus {
			stats.Current++
		} else {
			stats.Terminated++
		}
		if e.Salary != nil {
			salarySum = salarySum.Add(*e.Salary)
			salaryN++
		}
		if e.Age != nil {
			ageSum += *e.Age
			ageN++
		}
		if e.DateOfHire != nil {
			end := ref
			if e.DateOfTermination != nil {
				end = *e.DateOfTermination
			}
			tenureSum += end.Sub(*e.DateOfHire).Hours() / 24 / daysPerYear
			tenureN++
		}
	}

	if salaryN > 0 {
		avg := salarySum.Div(decimal.NewFromInt(salaryN)).Round(2)
		stats.AvgSalary = &avg
	}
	if ageN > 0 {
		avg := float64(ageSum) / float64(ageN)
		stats.AvgAge = &avg
	}
	if tenureN > 0 {
		avg := tenureSum / float64(tenureN)
		stats.AvgTenure = &avg
	}
	return stats, nil
}

func (r *analyticsRepositoryImpl) CountByCategory(ctx context.Context, cat analytics.Category) ([]analytics.CategoryCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, e := range r.store.snapshot() {
		key, err := categoryValue(&e, cat)
		if err != nil {
			return nil, err
		}
		counts[key]++
	}
	return sortedCounts(counts), nil
}

func (r *analyticsRepositoryImpl) SalaryDistribution(ctx context.Context) ([]analytics.BandCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, e := range r.store.snapshot() {
		if e.Salary == nil {
			continue
		}
		counts[analytics.SalaryBandFor(*e.Salary)]++
	}
	return bandCounts(analytics.SalaryBands, counts), nil
}

func (r *analyticsRepositoryImpl) AgeDistribution(ctx context.Context) ([]analytics.BandCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, e := range r.store.snapshot() {
		if e.Age == nil {
			continue
		}
		counts[analytics.AgeBandFor(*e.Age)]++
	}
	return bandCounts(analytics.AgeBands, counts), nil
}

func (r *analyticsRepositoryImpl) DepartmentStats(ctx context.Context) ([]analytics.DepartmentStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type acc struct {
		salarySum decimal.Decimal
		salaryN   int64
		absences  int64
		headcount int64
	}
	groups := make(map[string]*acc)
	for _, e := range r.store.snapshot() {
		g, ok := groups[e.Department]
		if !ok {
			g = &acc{}
			groups[e.Department] = g
		}
		g.headcount++
		if e.Salary != nil {
			g.salarySum = g.salarySum.Add(*e.Salary)
			g.salaryN++
		}
		if e.Absences != nil {
			g.absences += *e.Absences
		}
	}

	out := make([]analytics.DepartmentStats, 0, len(groups))
	for dept, g := range groups {
		stats := analytics.DepartmentStats{
			Department:    dept,
			TotalAbsences: g.absences,
			Headcount:     g.headcount,
		}
		if g.salaryN > 0 {
			avg := g.salarySum.Div(decimal.NewFromInt(g.salaryN)).Round(2)
			stats.AvgSalary = &avg
		}
		out = append(out, stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out, nil
}

func (r *analyticsRepositoryImpl) TerminationReasons(ctx context.Context) ([]analytics.CategoryCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, e := range r.store.snapshot() {
		if e.TermReason == "" {
			continue
		}
		counts[e.TermReason]++
	}
	return sortedCounts(counts), nil
}

func (r *analyticsRepositoryImpl) TerminatedByMaritalStatus(ctx context.Context) ([]analytics.CategoryCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, e := range r.store.snapshot() {
		if e.Termd == nil || !*e.Termd {
			continue
		}
		counts[e.MaritalDesc]++
	}
	return sortedCounts(counts), nil
}

func (r *analyticsRepositoryImpl) AbsencesByPerformance(ctx context.Context) ([]analytics.PerformanceAbsences, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type acc struct {
		sum float64
		n   int64
	}
	groups := make(map[string]*acc)
	for _, e := range r.store.snapshot() {
		if e.Absences == nil {
			continue
		}
		g, ok := groups[e.PerformanceScore]
		if !ok {
			g = &acc{}
			groups[e.PerformanceScore] = g
		}
		g.sum += float64(*e.Absences)
		g.n++
	}

	out := make([]analytics.PerformanceAbsences, 0, len(groups))
	for score, g := range groups {
		out = append(out, analytics.PerformanceAbsences{
			PerformanceScore: score,
			AvgAbsences:      g.sum / float64(g.n),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PerformanceScore < out[j].PerformanceScore })
	return out, nil
}

func (r *analyticsRepositoryImpl) SalaryBySex(ctx context.Context) ([]analytics.SexSalary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type acc struct {
		sum     decimal.Decimal
		salaryN int64
		count   int64
	}
	groups := make(map[string]*acc)
	for _, e := range r.store.snapshot() {
		g, ok := groups[e.Sex]
		if !ok {
			g = &acc{}
			groups[e.Sex] = g
		}
		g.count++
		if e.Salary != nil {
			g.sum = g.sum.Add(*e.Salary)
			g.salaryN++
		}
	}

	out := make([]analytics.SexSalary, 0, len(groups))
	for sex, g := range groups {
		row := analytics.SexSalary{Sex: sex, Count: g.count}
		if g.salaryN > 0 {
			total := g.sum
			row.TotalSalary = &total
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sex < out[j].Sex })
	return out, nil
}

func categoryValue(e *employee.Employee, cat analytics.Category) (string, error) {
	switch cat {
	case analytics.CategoryMaritalStatus:
		return e.MaritalDesc, nil
	case analytics.CategoryDepartment:
		return e.Department, nil
	case analytics.CategoryPosition:
		return e.Position, nil
	case analytics.CategoryManager:
		return e.ManagerName, nil
	case analytics.CategoryState:
		return e.State, nil
	case analytics.CategorySex:
		return e.Sex, nil
	case analytics.CategoryRecruitmentSource:
		return e.RecruitmentSource, nil
	case analytics.CategoryPerformanceScore:
		return e.PerformanceScore, nil
	}
	return "", fmt.Errorf("%w: %s", analytics.ErrUnknownCategory, cat)
}

// sortedCounts orders groups by count descending then key ascending, the
// deterministic order every backend agrees on.
func sortedCounts(counts map[string]int64) []analytics.CategoryCount {
	out := make([]analytics.CategoryCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, analytics.CategoryCount{Key: key, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// bandCounts emits the populated bands in band order; empty bands produce
// no row.
func bandCounts(bands []analytics.Band, counts map[string]int64) []analytics.BandCount {
	out := make([]analytics.BandCount, 0, len(counts))
	for _, b := range bands {
		if n, ok := counts[b.Label]; ok {
			out = append(out, analytics.BandCount{Band: b.Label, Count: n})
		}
	}
	return out
}
