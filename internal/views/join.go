package views

import (
	"github.com/it407/it-assets/pkg/table"
)

// Join describes one equality join onto the rows built so far. Columns maps
// right side columns to their output names. An inner join drops left rows
// without a match; a left join keeps them and adds none of the joined columns.
type Join struct {
	Table    string
	Rows     []table.Row
	LeftKey  string
	RightKey string
	Columns  map[string]string
	Inner    bool
}

func index(rows []table.Row, key string) map[string]table.Row {
	idx := make(map[string]table.Row, len(rows))
	for _, row := range rows {
		k := row.Get(key)
		if k == "" {
			continue
		}
		if _, exists := idx[k]; !exists {
			idx[k] = row
		}
	}
	return idx
}

// joinRows applies joins in order to copies of left. idColumn names the left
// column reported in diagnostics.
func joinRows(view string, left []table.Row, idColumn string, joins ...Join) ([]table.Row, []Diagnostic) {
	indexes := make([]map[string]table.Row, len(joins))
	for i, j := range joins {
		indexes[i] = index(j.Rows, j.RightKey)
	}

	out := make([]table.Row, 0, len(left))
	var diagnostics []Diagnostic

rows:
	for _, l := range left {
		row := l.Clone()
		for i, j := range joins {
			value := row.Get(j.LeftKey)
			match, ok := indexes[i][value]
			if !ok {
				if j.Inner {
					diagnostics = append(diagnostics, Diagnostic{
						View:   view,
						Table:  j.Table,
						Key:    j.LeftKey,
						Value:  value,
						RowID:  l.Get(idColumn),
						Reason: "no matching row",
					})
					continue rows
				}
				continue
			}
			for column, alias := range j.Columns {
				row[alias] = match[column]
			}
		}
		out = append(out, row)
	}

	return out, diagnostics
}
