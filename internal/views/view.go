package views

import (
	"sort"
	"strings"

	"github.com/it407/it-assets/pkg/metadata"
	"github.com/it407/it-assets/pkg/table"
)

// Diagnostic records a row a join dropped because its key had no match.
type Diagnostic struct {
	View   string `json:"view"`
	Table  string `json:"table"`
	Key    string `json:"key"`
	Value  string `json:"value"`
	RowID  string `json:"row_id"`
	Reason string `json:"reason"`
}

// View is a derived listing. Columns fixes the output order; a column missing
// from a row is null.
type View struct {
	Name        string
	Columns     []string
	Rows        []table.Row
	Diagnostics []Diagnostic
}

// Records projects the rows onto Columns with nil for null cells.
func (v View) Records() []map[string]interface{} {
	records := make([]map[string]interface{}, 0, len(v.Rows))
	for _, row := range v.Rows {
		record := make(map[string]interface{}, len(v.Columns))
		for _, c := range v.Columns {
			if value, ok := row[c]; ok {
				record[c] = value
			} else {
				record[c] = nil
			}
		}
		records = append(records, record)
	}
	return records
}

// Cells projects the rows onto Columns with "" for null cells.
func (v View) Cells() [][]string {
	cells := make([][]string, 0, len(v.Rows))
	for _, row := range v.Rows {
		line := make([]string, len(v.Columns))
		for i, c := range v.Columns {
			line[i] = row[c]
		}
		cells = append(cells, line)
	}
	return cells
}

// SortByDateDesc orders rows newest first on column. Rows without a readable
// date go last; ties keep their input order.
func SortByDateDesc(rows []table.Row, column string) {
	sort.SliceStable(rows, func(i, j int) bool {
		ti, okI := table.ParseTime(rows[i][column])
		tj, okJ := table.ParseTime(rows[j][column])
		switch {
		case okI && okJ:
			return ti.After(tj)
		case okI != okJ:
			return okI
		default:
			return strings.TrimSpace(rows[i][column]) > strings.TrimSpace(rows[j][column])
		}
	})
}

// WithStatus keeps the assignment rows in the given state.
func WithStatus(rows []table.Row, status metadata.AssignmentStatus) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		if row.Get("assignment_status") == status.String() {
			out = append(out, row)
		}
	}
	return out
}
