package filter

import (
	"strings"
	"time"

	"github.com/it407/it-assets/pkg/table"
)

// Predicate keeps or drops a row. A predicate with nothing to match on keeps every row.
type Predicate interface {
	Match(row table.Row) bool
}

// Text matches rows where any of Columns contains Query, ignoring case.
type Text struct {
	Query   string
	Columns []string
}

func (t Text) Match(row table.Row) bool {
	query := strings.ToLower(strings.TrimSpace(t.Query))
	if query == "" {
		return true
	}
	for _, column := range t.Columns {
		if strings.Contains(strings.ToLower(row[column]), query) {
			return true
		}
	}
	return false
}

// In matches rows whose Column value is one of Values. An empty set matches everything.
type In struct {
	Column string
	Values []string
}

func (in In) Match(row table.Row) bool {
	if len(in.Values) == 0 {
		return true
	}
	value := row.Get(in.Column)
	for _, v := range in.Values {
		if value == strings.TrimSpace(v) {
			return true
		}
	}
	return false
}

// DateRange matches rows whose Column falls between From and To, both
// inclusive and compared by calendar day. Rows with an unreadable date are
// dropped once any bound is set.
type DateRange struct {
	Column string
	From   *time.Time
	To     *time.Time
}

func (d DateRange) Match(row table.Row) bool {
	if d.From == nil && d.To == nil {
		return true
	}

	value, ok := table.ParseTime(row[d.Column])
	if !ok {
		return false
	}
	day := truncateDay(value)

	if d.From != nil && day.Before(truncateDay(*d.From)) {
		return false
	}
	if d.To != nil && day.After(truncateDay(*d.To)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Apply keeps the rows matching every predicate, preserving order.
func Apply(rows []table.Row, predicates ...Predicate) []table.Row {
	result := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		if matchAll(row, predicates) {
			result = append(result, row)
		}
	}
	return result
}

func matchAll(row table.Row, predicates []Predicate) bool {
	for _, p := range predicates {
		if p != nil && !p.Match(row) {
			return false
		}
	}
	return true
}
