package ingest

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/workmetrics/hr-analytics-go/internal/domain/employee"
	"github.com/workmetrics/hr-analytics-go/internal/domain/ingest"
	"github.com/workmetrics/hr-analytics-go/internal/pkg/validator"
)

type CleanerImpl struct{}

func NewCleaner() ingest.Cleaner {
	return &CleanerImpl{}
}

// Clean normalizes raw records into employee records. Field problems are
// collected as issues, never as batch failures: a record survives with nil
// in the offending field unless its EmpID itself is unusable.
func (c *CleanerImpl) Clean(ctx context.Context, records []ingest.RawRecord, ref time.Time) ([]employee.Employee, *ingest.CleanReport, error) {
	report := &ingest.CleanReport{
		RunID:         uuid.NewString(),
		ReferenceDate: ref,
		Input:         len(records),
	}

	out := make([]employee.Employee, 0, len(records))
	byID := make(map[int64]int)
	flagged := make(map[int64]bool)

	for _, raw := range records {
		emp, issues, ok := cleanRecord(raw, ref)
		report.Issues = append(report.Issues, issues...)
		if !ok {
			report.Dropped++
			continue
		}

		if i, dup := byID[emp.EmpID]; dup {
			// Later duplicates win, keeping the first occurrence's slot
			// so load order stays stable.
			report.Duplicates++
			emp.LoadSeq = out[i].LoadSeq
			out[i] = emp
			flagged[emp.EmpID] = len(issues) > 0
			continue
		}

		emp.LoadSeq = len(out)
		byID[emp.EmpID] = len(out)
		flagged[emp.EmpID] = len(issues) > 0
		out = append(out, emp)
	}

	for _, f := range flagged {
		if f {
			report.Flagged++
		}
	}
	report.Cleaned = len(out)

	return out, report, nil
}

// Refresh recomputes the derived fields in place and returns how many
// records changed. A second application with the same reference date is a
// no-op.
func (c *CleanerImpl) Refresh(records []employee.Employee, ref time.Time) int {
	changed := 0
	for i := range records {
		if applyDerived(&records[i], ref) {
			changed++
		}
	}
	return changed
}

func cleanRecord(raw ingest.RawRecord, ref time.Time) (employee.Employee, []ingest.FieldIssue, bool) {
	var issues []ingest.FieldIssue
	flag := func(field, value, reason string) {
		issues = append(issues, ingest.FieldIssue{
			Line:   raw.Line,
			EmpID:  raw.EmpID,
			Field:  field,
			Value:  value,
			Reason: reason,
		})
	}

	// Without a usable id the record cannot serve as identity at all.
	if !validator.IsNumeric(raw.EmpID) {
		flag(ingest.ColEmpID, raw.EmpID, "employee id is not an integer")
		return employee.Employee{}, issues, false
	}
	id, err := strconv.ParseInt(raw.EmpID, 10, 64)
	if err != nil {
		flag(ingest.ColEmpID, raw.EmpID, "employee id out of range")
		return employee.Employee{}, issues, false
	}

	emp := employee.Employee{
		EmpID:             id,
		Department:        raw.Department,
		Position:          raw.Position,
		ManagerName:       raw.ManagerName,
		MaritalDesc:       raw.MaritalDesc,
		Sex:               raw.Sex,
		State:             raw.State,
		RecruitmentSource: raw.RecruitmentSource,
		TermReason:        raw.TermReason,
		PerformanceScore:  raw.PerformanceScore,
	}

	emp.DOB = parseDayMonthYear(raw.DOB, ingest.ColDOB, flag)
	emp.DateOfHire = parseDayMonthYear(raw.DateOfHire, ingest.ColDateOfHire, flag)
	emp.DateOfTermination = parseDayMonthYear(raw.DateOfTermination, ingest.ColDateOfTermination, flag)
	emp.LastReviewDate = parseISODate(raw.LastReviewDate, ingest.ColLastReviewDate, flag)
	emp.Salary = parseSalary(raw.Salary, flag)
	emp.Absences = parseCount(raw.Absences, ingest.ColAbsences, flag)
	emp.Termd = parseBoolFlag(raw.Termd, ingest.ColTermd, flag)

	if emp.DOB != nil && emp.DOB.After(ref) {
		flag(ingest.ColDOB, raw.DOB, "date of birth after reference date")
	}

	applyDerived(&emp, ref)
	return emp, issues, true
}

// applyDerived recomputes CurrentStatus and Age from the canonical fields.
// A record counts as current exactly when it carries no termination date,
// which is also what an unparseable termination text collapses to.
func applyDerived(emp *employee.Employee, ref time.Time) bool {
	status := emp.DateOfTermination == nil

	var age *int64
	if emp.DOB != nil && !emp.DOB.After(ref) {
		a := ageAt(*emp.DOB, ref)
		age = &a
	}

	changed := emp.CurrentStatus != status || !int64PtrEqual(emp.Age, age)
	emp.CurrentStatus = status
	emp.Age = age
	return changed
}

// ageAt returns complete years from dob to ref; the birthday itself counts
// as completed.
func ageAt(dob, ref time.Time) int64 {
	years := int64(ref.Year() - dob.Year())
	if ref.Month() < dob.Month() || (ref.Month() == dob.Month() && ref.Day() < dob.Day()) {
		years--
	}
	return years
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func parseDayMonthYear(value, field string, flag func(field, value, reason string)) *time.Time {
	if validator.IsEmpty(value) {
		return nil
	}
	if t, ok := validator.IsDayMonthYearDate(value); ok {
		return &t
	}
	flag(field, value, "expected day-month-year date")
	return nil
}

func parseISODate(value, field string, flag func(field, value, reason string)) *time.Time {
	if validator.IsEmpty(value) {
		return nil
	}
	if t, ok := validator.IsISODate(value); ok {
		return &t
	}
	flag(field, value, "expected year-month-day date")
	return nil
}

func parseSalary(value string, flag func(field, value, reason string)) *decimal.Decimal {
	if validator.IsEmpty(value) {
		return nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		flag(ingest.ColSalary, value, "expected numeric salary")
		return nil
	}
	// Round half away from zero to exactly two fractional digits.
	d = d.Round(2)
	return &d
}

func parseCount(value, field string, flag func(field, value, reason string)) *int64 {
	if validator.IsEmpty(value) {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		flag(field, value, "expected integer")
		return nil
	}
	return &n
}

func parseBoolFlag(value, field string, flag func(field, value, reason string)) *bool {
	if validator.IsEmpty(value) {
		return nil
	}
	switch strings.ToLower(value) {
	case "1", "true":
		b := true
		return &b
	case "0", "false":
		b := false
		return &b
	}
	flag(field, value, "expected 0 or 1")
	return nil
}
