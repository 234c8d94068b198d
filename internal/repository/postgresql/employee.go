package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/workmetrics/hr-analytics-go/internal/domain/employee"
	"github.com/workmetrics/hr-analytics-go/internal/pkg/database"
)

const uniqueViolationCode = "23505"

var employeeColumns = []string{
	"emp_id", "load_seq", "dob", "date_of_hire", "date_of_termination",
	"last_review_date", "salary", "department", "position", "manager_name",
	"marital_desc", "sex", "state", "recruitment_source", "term_reason",
	"performance_score", "absences", "termd", "current_status", "age",
}

const selectEmployeeColumns = `
	emp_id, load_seq, dob, date_of_hire, date_of_termination,
	last_review_date, salary, department, position, manager_name,
	marital_desc, sex, state, recruitment_source, term_reason,
	performance_score, absences, termd, current_status, age
`

type employeeStoreImpl struct {
	db database.TxBeginner
}

func NewEmployeeStore(db database.TxBeginner) employee.Store {
	return &employeeStoreImpl{db: db}
}

// Load replaces the whole table: truncate plus CopyFrom bulk insert, both
// inside one transaction so readers never observe a partial table.
func (s *employeeStoreImpl) Load(ctx context.Context, records []employee.Employee) error {
	err := WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "TRUNCATE TABLE employees"); err != nil {
			return fmt.Errorf("failed to truncate employees: %w", err)
		}

		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"employees"},
			employeeColumns,
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				r := records[i]
				return []any{
					r.EmpID, r.LoadSeq, r.DOB, r.DateOfHire,
					r.DateOfTermination, r.LastReviewDate, r.Salary,
					r.Department, r.Position, r.ManagerName, r.MaritalDesc,
					r.Sex, r.State, r.RecruitmentSource, r.TermReason,
					r.PerformanceScore, r.Absences, r.Termd,
					r.CurrentStatus, r.Age,
				}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to bulk insert employees: %w", err)
		}
		return nil
	})
	if err != nil {
		return translatePgError(err)
	}
	return nil
}

func (s *employeeStoreImpl) FirstLoaded(ctx context.Context, n int) ([]employee.Employee, error) {
	query := "SELECT " + selectEmployeeColumns + " FROM employees ORDER BY load_seq ASC LIMIT $1"
	return s.queryEmployees(ctx, query, n)
}

func (s *employeeStoreImpl) LastByEmpID(ctx context.Context, n int) ([]employee.Employee, error) {
	query := "SELECT " + selectEmployeeColumns + " FROM employees ORDER BY emp_id DESC LIMIT $1"
	return s.queryEmployees(ctx, query, n)
}

func (s *employeeStoreImpl) queryEmployees(ctx context.Context, query string, args ...any) ([]employee.Employee, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.EmpID, &emp.LoadSeq, &emp.DOB, &emp.DateOfHire,
			&emp.DateOfTermination, &emp.LastReviewDate, &emp.Salary,
			&emp.Department, &emp.Position, &emp.ManagerName,
			&emp.MaritalDesc, &emp.Sex, &emp.State, &emp.RecruitmentSource,
			&emp.TermReason, &emp.PerformanceScore, &emp.Absences,
			&emp.Termd, &emp.CurrentStatus, &emp.Age,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// translatePgError maps constraint violations onto domain errors.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("failed to load employees: %w", employee.ErrDuplicateEmpID)
	}
	return err
}
