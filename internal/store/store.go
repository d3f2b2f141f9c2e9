package store

import (
	"context"
	"sort"

	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/table"
)

// TableStore is a flat, sheet-like backend. It offers no transactions across
// tables and enforces neither uniqueness nor references.
type TableStore interface {
	ReadTable(ctx context.Context, name string) (table.Table, error)
	// WriteTable replaces the whole table, adding columns for row keys the
	// stored header lacks. It fails with a ConflictError when the stored
	// table no longer matches t.Revision.
	WriteTable(ctx context.Context, name string, t table.Table) error
	// AppendRow adds one row aligned to the stored header. Keys outside the
	// header are dropped and missing columns are written empty.
	AppendRow(ctx context.Context, name string, row table.Row) error
}

// Load reads a table and normalizes its headers.
func Load(ctx context.Context, s TableStore, name string) (table.Table, error) {
	t, err := s.ReadTable(ctx, name)
	if err != nil {
		return table.Table{}, custom_error.WrapBackend("read", name, err)
	}
	return table.Normalize(t), nil
}

// LoadAll reads every named table, stopping at the first failure.
func LoadAll(ctx context.Context, s TableStore, names ...string) (map[string]table.Table, error) {
	tables := make(map[string]table.Table, len(names))
	for _, name := range names {
		if _, ok := tables[name]; ok {
			continue
		}
		t, err := Load(ctx, s, name)
		if err != nil {
			return nil, err
		}
		tables[name] = t
	}
	return tables, nil
}

// AlignRow orders row by header, filling missing columns with "".
func AlignRow(header []string, row table.Row) []string {
	normalized := table.NormalizeRow(row)
	values := make([]string, len(header))
	for i, h := range header {
		values[i] = normalized[table.NormalizeHeader(h)]
	}
	return values
}

// HeaderFor returns the stored header, or the canonical one when the table is still empty.
func HeaderFor(name string, stored []string, row table.Row) []string {
	if len(stored) > 0 {
		return stored
	}
	if header, ok := Schema(name); ok {
		return header
	}
	return SortedKeys(row)
}

// OverwriteHeader is the header of a full-table write: the stored header
// followed by every row key it lacks, canonical columns first in schema
// order, the rest sorted.
func OverwriteHeader(name string, stored []string, rows []table.Row) []string {
	var first table.Row
	if len(rows) > 0 {
		first = rows[0]
	}
	header := append([]string(nil), HeaderFor(name, stored, first)...)

	known := make(map[string]bool, len(header))
	for _, h := range header {
		known[table.NormalizeHeader(h)] = true
	}

	extra := make(map[string]bool)
	for _, row := range rows {
		for k := range table.NormalizeRow(row) {
			if k != "" && !known[k] {
				extra[k] = true
			}
		}
	}
	if len(extra) == 0 {
		return header
	}

	if canonical, ok := Schema(name); ok {
		for _, h := range canonical {
			if extra[h] {
				header = append(header, h)
				delete(extra, h)
			}
		}
	}

	rest := make([]string, 0, len(extra))
	for k := range extra {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(header, rest...)
}
