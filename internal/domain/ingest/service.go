package ingest

import (
	"context"
	"io"
	"time"

	"github.com/workmetrics/hr-analytics-go/internal/domain/employee"
)

// Loader ingests raw delimited records. It checks column presence only;
// value validation belongs to the Cleaner.
type Loader interface {
	Load(ctx context.Context, r io.Reader) (*LoadResult, error)
}

// Cleaner normalizes raw records into employee records and computes the
// derived fields against one shared reference date per run.
type Cleaner interface {
	// Clean parses every record, collecting per-field issues instead of
	// failing the batch. Records whose EmpID does not parse are dropped;
	// later duplicates of an EmpID win over earlier ones.
	Clean(ctx context.Context, records []RawRecord, ref time.Time) ([]employee.Employee, *CleanReport, error)

	// Refresh recomputes the derived fields on already-cleaned records and
	// returns how many records changed. Applying it twice with the same
	// reference date changes nothing the second time.
	Refresh(records []employee.Employee, ref time.Time) int
}
