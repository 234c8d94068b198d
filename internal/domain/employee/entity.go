package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is one cleaned row of the analytics table. Optional fields are
// nil when the source value was empty or did not parse; stores persist nil
// as SQL NULL so aggregates skip them without extra bookkeeping.
type Employee struct {
	EmpID             int64
	LoadSeq           int
	DOB               *time.Time
	DateOfHire        *time.Time
	DateOfTermination *time.Time
	LastReviewDate    *time.Time
	Salary            *decimal.Decimal
	Department        string
	Position          string
	ManagerName       string
	MaritalDesc       string
	Sex               string
	State             string
	RecruitmentSource string
	TermReason        string
	PerformanceScore  string
	Absences          *int64
	Termd             *bool
	CurrentStatus     bool
	Age               *int64
}

// Terminated reports whether the record counts as former staff. A record is
// former exactly when it carries a termination date after cleaning.
func (e *Employee) Terminated() bool {
	return !e.CurrentStatus
}
