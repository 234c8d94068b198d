package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/workmetrics/hr-analytics-go/internal/domain/ingest"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\ufeff"

type LoaderImpl struct {
	comma rune
}

func NewLoader() ingest.Loader {
	return &LoaderImpl{comma: ','}
}

// Load reads CSV input into raw records. Column presence is the only thing
// enforced here; value validation belongs to the Cleaner.
func (l *LoaderImpl) Load(ctx context.Context, r io.Reader) (*ingest.LoadResult, error) {
	cr := csv.NewReader(r)
	cr.Comma = l.comma
	// Width is enforced per row below so one bad row cannot abort the run.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ingest.ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	index, missing := mapHeader(header)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ingest.ErrMissingColumn, strings.Join(missing, ", "))
	}

	result := &ingest.LoadResult{}
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		result.Stats.RowsRead++
		if err != nil {
			slog.Warn("Skipping unreadable row", "line", line, "error", err)
			result.Stats.RowsSkipped++
			continue
		}
		if len(row) != len(header) {
			slog.Warn("Skipping row with wrong field count", "line", line, "expected", len(header), "got", len(row))
			result.Stats.RowsSkipped++
			continue
		}

		result.Records = append(result.Records, recordFromRow(row, index, line))
		result.Stats.RowsKept++
	}

	return result, nil
}

// normalizeHeader lowercases, trims and collapses spaces to underscores so
// source exports with cosmetic header drift still bind. The UTF-8 BOM some
// spreadsheet exports prepend is stripped from the first cell.
func normalizeHeader(i int, col string) string {
	if i == 0 {
		col = strings.TrimPrefix(col, utf8BOM)
	}
	col = strings.TrimSpace(strings.ToLower(col))
	return strings.ReplaceAll(col, " ", "_")
}

// mapHeader binds required columns to their positions. Unrecognized input
// columns are ignored; a duplicated header keeps its first position.
func mapHeader(header []string) (map[string]int, []string) {
	pos := make(map[string]int, len(header))
	for i, col := range header {
		key := normalizeHeader(i, col)
		if _, ok := pos[key]; !ok {
			pos[key] = i
		}
	}

	var missing []string
	index := make(map[string]int)
	for _, col := range ingest.RequiredColumns() {
		i, ok := pos[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		index[col] = i
	}
	return index, missing
}

func recordFromRow(row []string, index map[string]int, line int) ingest.RawRecord {
	field := func(col string) string {
		return strings.TrimSpace(row[index[col]])
	}
	return ingest.RawRecord{
		Line:              line,
		EmpID:             field(ingest.ColEmpID),
		DOB:               field(ingest.ColDOB),
		DateOfHire:        field(ingest.ColDateOfHire),
		DateOfTermination: field(ingest.ColDateOfTermination),
		LastReviewDate:    field(ingest.ColLastReviewDate),
		Salary:            field(ingest.ColSalary),
		Department:        field(ingest.ColDepartment),
		Position:          field(ingest.ColPosition),
		ManagerName:       field(ingest.ColManagerName),
		MaritalDesc:       field(ingest.ColMaritalDesc),
		Sex:               field(ingest.ColSex),
		State:             field(ingest.ColState),
		RecruitmentSource: field(ingest.ColRecruitmentSource),
		TermReason:        field(ingest.ColTermReason),
		PerformanceScore:  field(ingest.ColPerformanceScore),
		Absences:          field(ingest.ColAbsences),
		Termd:             field(ingest.ColTermd),
	}
}
