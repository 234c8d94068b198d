package analytics

import "time"

// Row maps declared output column names to values for one result-set row.
type Row map[string]any

// ResultSet is one catalog entry's output: a named sequence of rows with a
// fixed column order.
type ResultSet struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Catalog is the full aggregate report for one pipeline run. Results appear
// in fixed catalog order regardless of how the queries were scheduled.
type Catalog struct {
	GeneratedAt   time.Time   `json:"generated_at"`
	ReferenceDate time.Time   `json:"reference_date"`
	Results       []ResultSet `json:"results"`
}

// Result returns the result set with the given name, or nil.
func (c *Catalog) Result(name string) *ResultSet {
	for i := range c.Results {
		if c.Results[i].Name == name {
			return &c.Results[i]
		}
	}
	return nil
}
