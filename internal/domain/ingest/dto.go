package ingest

import "time"

// Canonical source column spellings. Input headers are matched against
// these after normalization, so "EmpID", "empid" and "EMPID " all bind.
const (
	ColEmpID             = "EmpID"
	ColDOB               = "DOB"
	ColDateOfHire        = "DateofHire"
	ColDateOfTermination = "DateofTermination"
	ColLastReviewDate    = "LastPerformanceReview_Date"
	ColSalary            = "Salary"
	ColDepartment        = "Department"
	ColPosition          = "Position"
	ColManagerName       = "ManagerName"
	ColMaritalDesc       = "MaritalDesc"
	ColSex               = "Sex"
	ColState             = "State"
	ColRecruitmentSource = "RecruitmentSource"
	ColTermReason        = "TermReason"
	ColPerformanceScore  = "PerformanceScore"
	ColAbsences          = "Absences"
	ColTermd             = "Termd"
)

// RequiredColumns returns every column the loader must find in the header,
// in schema order.
func RequiredColumns() []string {
	return []string{
		ColEmpID,
		ColDOB,
		ColDateOfHire,
		ColDateOfTermination,
		ColLastReviewDate,
		ColSalary,
		ColDepartment,
		ColPosition,
		ColManagerName,
		ColMaritalDesc,
		ColSex,
		ColState,
		ColRecruitmentSource,
		ColTermReason,
		ColPerformanceScore,
		ColAbsences,
		ColTermd,
	}
}

// RawRecord carries one input row before cleaning, every field as the raw
// trimmed text from the source.
type RawRecord struct {
	Line              int
	EmpID             string
	DOB               string
	DateOfHire        string
	DateOfTermination string
	LastReviewDate    string
	Salary            string
	Department        string
	Position          string
	ManagerName       string
	MaritalDesc       string
	Sex               string
	State             string
	RecruitmentSource string
	TermReason        string
	PerformanceScore  string
	Absences          string
	Termd             string
}

// LoadStats is the loader's row accounting for one run.
type LoadStats struct {
	RowsRead    int `json:"rows_read"`
	RowsKept    int `json:"rows_kept"`
	RowsSkipped int `json:"rows_skipped"`
}

// LoadResult is the loader's output: raw records in input order plus stats.
type LoadResult struct {
	Records []RawRecord `json:"-"`
	Stats   LoadStats   `json:"stats"`
}

// FieldIssue describes one non-fatal cleaning problem. EmpID is the raw
// text, since the id itself may be the field that failed.
type FieldIssue struct {
	Line   int    `json:"line"`
	EmpID  string `json:"emp_id"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// CleanReport summarizes one cleaning pass. Flagged records stay in the
// output with nil in the offending field; dropped records do not.
type CleanReport struct {
	RunID         string       `json:"run_id"`
	ReferenceDate time.Time    `json:"reference_date"`
	Input         int          `json:"input"`
	Cleaned       int          `json:"cleaned"`
	Flagged       int          `json:"flagged"`
	Dropped       int          `json:"dropped"`
	Duplicates    int          `json:"duplicates"`
	Issues        []FieldIssue `json:"issues,omitempty"`
}
