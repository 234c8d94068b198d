// Package sqlite implements the employee store and analytics repository on
// an embedded SQLite database over database/sql. Dates are stored as
// ISO-8601 text and salaries as integer cents so sums stay exact; SQLite
// has no bulk-load API, so Load batches INSERTs inside one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/workmetrics/hr-analytics-go/internal/domain/employee"
)

const dateLayout = "2006-01-02"

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS employees (
		emp_id              INTEGER PRIMARY KEY,
		load_seq            INTEGER NOT NULL,
		dob                 TEXT,
		date_of_hire        TEXT,
		date_of_termination TEXT,
		last_review_date    TEXT,
		salary_cents        INTEGER,
		department          TEXT NOT NULL DEFAULT '',
		position            TEXT NOT NULL DEFAULT '',
		manager_name        TEXT NOT NULL DEFAULT '',
		marital_desc        TEXT NOT NULL DEFAULT '',
		sex                 TEXT NOT NULL DEFAULT '',
		state               TEXT NOT NULL DEFAULT '',
		recruitment_source  TEXT NOT NULL DEFAULT '',
		term_reason         TEXT NOT NULL DEFAULT '',
		performance_score   TEXT NOT NULL DEFAULT '',
		absences            INTEGER,
		termd               INTEGER,
		current_status      INTEGER NOT NULL,
		age                 INTEGER
	)
`

const insertSQL = `
	INSERT INTO employees (
		emp_id, load_seq, dob, date_of_hire, date_of_termination,
		last_review_date, salary_cents, department, position, manager_name,
		marital_desc, sex, state, recruitment_source, term_reason,
		performance_score, absences, termd, current_status, age
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectColumns = `
	emp_id, load_seq, dob, date_of_hire, date_of_termination,
	last_review_date, salary_cents, department, position, manager_name,
	marital_desc, sex, state, recruitment_source, term_reason,
	performance_score, absences, termd, current_status, age
`

type Store struct {
	db *sql.DB
}

// Open opens a SQLite database at dsn and returns the store plus a close
// function. ":memory:" gives a private in-memory database.
func Open(ctx context.Context, dsn string) (*Store, func(), error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, nil, fmt.Errorf("sqlite dsn must not be empty")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Store{db: db}, closeFn, nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for the analytics repository.
func (s *Store) DB() *sql.DB {
	return s.db
}

// EnsureSchema creates the employees table if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create employees table: %w", err)
	}
	return nil
}

// Load replaces the whole table inside a single transaction.
func (s *Store) Load(ctx context.Context, records []employee.Employee) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM employees"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to truncate employees: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.EmpID, r.LoadSeq,
			dateText(r.DOB), dateText(r.DateOfHire),
			dateText(r.DateOfTermination), dateText(r.LastReviewDate),
			salaryCents(r.Salary),
			r.Department, r.Position, r.ManagerName, r.MaritalDesc,
			r.Sex, r.State, r.RecruitmentSource, r.TermReason,
			r.PerformanceScore,
			nullableInt64(r.Absences), boolInt(r.Termd),
			boolToInt(r.CurrentStatus), nullableInt64(r.Age),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert employee %d: %w", r.EmpID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}
	return nil
}

func (s *Store) FirstLoaded(ctx context.Context, n int) ([]employee.Employee, error) {
	query := "SELECT " + selectColumns + " FROM employees ORDER BY load_seq ASC LIMIT ?"
	return s.queryEmployees(ctx, query, n)
}

func (s *Store) LastByEmpID(ctx context.Context, n int) ([]employee.Employee, error) {
	query := "SELECT " + selectColumns + " FROM employees ORDER BY emp_id DESC LIMIT ?"
	return s.queryEmployees(ctx, query, n)
}

func (s *Store) queryEmployees(ctx context.Context, query string, args ...any) ([]employee.Employee, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanEmployee(rows *sql.Rows) (employee.Employee, error) {
	var emp employee.Employee
	var dob, hire, term, review sql.NullString
	var cents, absences, age sql.NullInt64
	var termd sql.NullBool
	err := rows.Scan(
		&emp.EmpID, &emp.LoadSeq, &dob, &hire, &term, &review, &cents,
		&emp.Department, &emp.Position, &emp.ManagerName, &emp.MaritalDesc,
		&emp.Sex, &emp.State, &emp.RecruitmentSource, &emp.TermReason,
		&emp.PerformanceScore, &absences, &termd, &emp.CurrentStatus, &age,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to scan employee: %w", err)
	}

	if emp.DOB, err = parseDate(dob); err != nil {
		return employee.Employee{}, err
	}
	if emp.DateOfHire, err = parseDate(hire); err != nil {
		return employee.Employee{}, err
	}
	if emp.DateOfTermination, err = parseDate(term); err != nil {
		return employee.Employee{}, err
	}
	if emp.LastReviewDate, err = parseDate(review); err != nil {
		return employee.Employee{}, err
	}
	if cents.Valid {
		d := decimal.New(cents.Int64, -2)
		emp.Salary = &d
	}
	if absences.Valid {
		emp.Absences = &absences.Int64
	}
	if termd.Valid {
		emp.Termd = &termd.Bool
	}
	if age.Valid {
		emp.Age = &age.Int64
	}
	return emp, nil
}

func dateText(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func parseDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored date %q: %w", s.String, err)
	}
	return &t, nil
}

// salaryCents converts a two-decimal salary to integer cents; the cleaner
// rounds before the store ever sees the value, so this is exact.
func salaryCents(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.Shift(2).IntPart()
}

func nullableInt64(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}

// SQLite has no boolean affinity; flags are stored as 0/1 integers.
func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func boolInt(b *bool) any {
	if b == nil {
		return nil
	}
	return boolToInt(*b)
}
