// Package fixtures provides the shared employee dataset the store and
// service tests run their aggregate assertions against. Every backend is
// expected to produce the same catalog over this data.
package fixtures

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workmetrics/hr-analytics-go/internal/domain/employee"
)

// ReferenceDate is the shared "now" the fixture aggregates assume.
var ReferenceDate = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

func DatePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func DecimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func Int64Ptr(n int64) *int64 { return &n }

func BoolPtr(b bool) *bool { return &b }

// Employees returns five cleaned records covering the aggregate edge cases:
// current and terminated staff, a record with nothing but categoricals
// (1004: nil DOB, salary and absences, empty department), a sub-30K salary
// just under the band boundary (1003) and a birthday falling exactly on the
// reference date (1005).
//
// Expected aggregates at ReferenceDate:
//
//	total 5, current 3, terminated 2, attrition 40%
//	average salary 61750.00 over 4 parseable salaries
//	average age 34.75 over ages [34 38 21 46]
//	salary bands <30K:1  50K-69K:1  70K-89K:1  90K and above:1
//	age bands    20-29:1  30-39:2  40-49:1
func Employees() []employee.Employee {
	return []employee.Employee{
		{
			EmpID:             1001,
			LoadSeq:           0,
			DOB:               DatePtr(1990, time.March, 15),
			DateOfHire:        DatePtr(2011, time.July, 5),
			LastReviewDate:    DatePtr(2019, time.January, 17),
			Salary:            DecimalPtr("55000.00"),
			Department:        "Production",
			Position:          "Technician I",
			ManagerName:       "Michael Albert",
			MaritalDesc:       "Single",
			Sex:               "M",
			State:             "MA",
			RecruitmentSource: "LinkedIn",
			PerformanceScore:  "Fully Meets",
			Absences:          Int64Ptr(3),
			Termd:             BoolPtr(false),
			CurrentStatus:     true,
			Age:               Int64Ptr(34),
		},
		{
			EmpID:             1002,
			LoadSeq:           1,
			DOB:               DatePtr(1985, time.August, 1),
			DateOfHire:        DatePtr(2015, time.January, 5),
			DateOfTermination: DatePtr(2020, time.September, 24),
			LastReviewDate:    DatePtr(2020, time.February, 24),
			Salary:            DecimalPtr("92000.00"),
			Department:        "IT/IS",
			Position:          "Sr DBA",
			ManagerName:       "Simon Roup",
			MaritalDesc:       "Married",
			Sex:               "F",
			State:             "MA",
			RecruitmentSource: "Indeed",
			TermReason:        "career change",
			PerformanceScore:  "Exceeds",
			Absences:          Int64Ptr(10),
			Termd:             BoolPtr(true),
			CurrentStatus:     false,
			Age:               Int64Ptr(38),
		},
		{
			EmpID:             1003,
			LoadSeq:           2,
			DOB:               DatePtr(2002, time.December, 30),
			DateOfHire:        DatePtr(2023, time.February, 20),
			LastReviewDate:    DatePtr(2024, time.January, 9),
			Salary:            DecimalPtr("29999.99"),
			Department:        "Production",
			Position:          "Technician I",
			ManagerName:       "Michael Albert",
			MaritalDesc:       "Single",
			Sex:               "F",
			State:             "CT",
			RecruitmentSource: "LinkedIn",
			PerformanceScore:  "Needs Improvement",
			Absences:          Int64Ptr(7),
			Termd:             BoolPtr(false),
			CurrentStatus:     true,
			Age:               Int64Ptr(21),
		},
		{
			// Flagged record: every optional field failed to parse, only
			// the categoricals survive. Aggregates must skip its nils
			// without dropping the record.
			EmpID:            1004,
			LoadSeq:          3,
			MaritalDesc:      "Divorced",
			Sex:              "M",
			State:            "TX",
			PerformanceScore: "Fully Meets",
			CurrentStatus:    true,
		},
		{
			EmpID:             1005,
			LoadSeq:           4,
			DOB:               DatePtr(1978, time.June, 30),
			DateOfHire:        DatePtr(2010, time.June, 30),
			DateOfTermination: DatePtr(2014, time.June, 30),
			LastReviewDate:    DatePtr(2014, time.May, 2),
			Salary:            DecimalPtr("70000.00"),
			Department:        "Sales",
			Position:          "Area Sales Manager",
			ManagerName:       "Lynn Daneault",
			MaritalDesc:       "Married",
			Sex:               "F",
			State:             "VT",
			RecruitmentSource: "Website",
			TermReason:        "unhappy",
			PerformanceScore:  "Fully Meets",
			Absences:          Int64Ptr(15),
			Termd:             BoolPtr(true),
			CurrentStatus:     false,
			Age:               Int64Ptr(46),
		},
	}
}
