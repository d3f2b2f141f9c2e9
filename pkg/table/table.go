package table

import (
	"sort"
	"strings"
)

// Row is one record of a flat table keyed by column header. A column that is
// absent from the map is null.
type Row map[string]string

func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

func (r Row) Clone() Row {
	clone := make(Row, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}

// Table is a snapshot of one named sheet. Revision identifies the stored
// version the snapshot was read from and is checked again on overwrite.
type Table struct {
	Header   []string
	Rows     []Row
	Revision string
}

// Column returns the values of one column in row order.
func (t Table) Column(column string) []string {
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, row[column])
	}
	return values
}

// Index returns the position of the first row whose column equals value.
func (t Table) Index(column, value string) int {
	for i, row := range t.Rows {
		if row.Get(column) == value {
			return i
		}
	}
	return -1
}

func NormalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// NormalizeRow lower-cases and trims every key. When two keys collapse to the
// same name the value of the already normalized one is kept.
func NormalizeRow(row Row) Row {
	normalized := make(Row, len(row))
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		nk := NormalizeHeader(k)
		if _, exists := normalized[nk]; exists && k != nk {
			continue
		}
		normalized[nk] = row[k]
	}
	return normalized
}

// Normalize applies NormalizeHeader to the header and every row. Applying it
// twice gives the same table as applying it once.
func Normalize(t Table) Table {
	header := make([]string, 0, len(t.Header))
	seen := make(map[string]bool, len(t.Header))
	for _, h := range t.Header {
		nh := NormalizeHeader(h)
		if seen[nh] {
			continue
		}
		seen[nh] = true
		header = append(header, nh)
	}

	rows := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, normalizeRowInOrder(row, t.Header))
	}

	return Table{Header: header, Rows: rows, Revision: t.Revision}
}

// normalizeRowInOrder resolves collisions by header position, so the first
// column of a pair wins. Keys outside the header fall back to NormalizeRow.
func normalizeRowInOrder(row Row, header []string) Row {
	normalized := make(Row, len(row))
	for _, h := range header {
		v, ok := row[h]
		if !ok {
			continue
		}
		nh := NormalizeHeader(h)
		if _, exists := normalized[nh]; exists {
			continue
		}
		normalized[nh] = v
	}

	for k, v := range NormalizeRow(row) {
		if _, exists := normalized[k]; !exists {
			normalized[k] = v
		}
	}
	return normalized
}

// IsFalsy reports whether a boolean-ish cell is one of false, 0 or no, ignoring case.
func IsFalsy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "false", "0", "no":
		return true
	default:
		return false
	}
}

// Distinct returns the sorted non-empty values of column.
func Distinct(rows []Row, column string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, row := range rows {
		v := row.Get(column)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
