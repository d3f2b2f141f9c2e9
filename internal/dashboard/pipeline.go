package dashboard

import (
	"net/url"
	"strings"
	"time"

	"github.com/it407/it-assets/internal/filter"
	"github.com/it407/it-assets/internal/store"
	"github.com/it407/it-assets/internal/views"
	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/roles"
	"github.com/it407/it-assets/pkg/security"
	"github.com/it407/it-assets/pkg/table"
)

// Pipeline describes one dashboard: the tables it reads, how they are joined
// into a view and which query parameters narrow the result.
type Pipeline struct {
	Name    string
	Roles   []roles.Role
	Tables  []string
	Build   func(tables map[string]table.Table, p security.Principal) views.View
	Filters func(q Query) ([]filter.Predicate, error)
}

// Query reads filter parameters. The value All and empty values mean unset;
// a parameter may repeat or hold a comma separated list.
type Query url.Values

func (q Query) Text(key string) string {
	value := strings.TrimSpace(url.Values(q).Get(key))
	if strings.EqualFold(value, "All") {
		return ""
	}
	return value
}

func (q Query) Values(key string) []string {
	var values []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			v = strings.TrimSpace(v)
			if v == "" || strings.EqualFold(v, "All") {
				continue
			}
			values = append(values, v)
		}
	}
	return values
}

func (q Query) DateRange(column string) (filter.DateRange, error) {
	r := filter.DateRange{Column: column}
	for key, bound := range map[string]**time.Time{"from": &r.From, "to": &r.To} {
		value := q.Text(key)
		if value == "" {
			continue
		}
		t, err := time.Parse(table.DateLayout, value)
		if err != nil {
			return filter.DateRange{}, custom_error.NewValidationError(key, "must be a date in %s format", table.DateLayout)
		}
		*bound = &t
	}
	return r, nil
}

func (q Query) in(columns ...string) []filter.Predicate {
	predicates := make([]filter.Predicate, 0, len(columns))
	for _, c := range columns {
		predicates = append(predicates, filter.In{Column: c, Values: q.Values(c)})
	}
	return predicates
}

func (q Query) listing(dateColumn string, textColumns []string, setColumns ...string) ([]filter.Predicate, error) {
	dates, err := q.DateRange(dateColumn)
	if err != nil {
		return nil, err
	}
	predicates := []filter.Predicate{filter.Text{Query: q.Text("q"), Columns: textColumns}, dates}
	return append(predicates, q.in(setColumns...)...), nil
}

var managers = []roles.Role{roles.Admin, roles.Manager}

// Pipelines returns the dashboards by name. attendanceSheet names the table
// holding the attendance export.
func Pipelines(attendanceSheet string) map[string]Pipeline {
	list := []Pipeline{
		{
			Name:   views.AssetSummaryView,
			Roles:  managers,
			Tables: []string{store.AssetsMaster, store.AssetAssignments},
			Build: func(t map[string]table.Table, _ security.Principal) views.View {
				return views.AvailabilitySummary(t[store.AssetsMaster].Rows, t[store.AssetAssignments].Rows)
			},
			Filters: func(q Query) ([]filter.Predicate, error) {
				return q.in("category", "location"), nil
			},
		},
		{
			Name:   views.ActiveAssetAssignmentsView,
			Roles:  managers,
			Tables: []string{store.AssetAssignments, store.AssetsMaster, store.EmployeeMaster},
			Build: func(t map[string]table.Table, _ security.Principal) views.View {
				return views.ActiveAssetAssignments(t[store.AssetAssignments].Rows, t[store.AssetsMaster].Rows, t[store.EmployeeMaster].Rows)
			},
			Filters: func(q Query) ([]filter.Predicate, error) {
				return q.listing("assigned_on",
					[]string{"asset_id", "asset_name", "employee_id", "employee_name"},
					"category", "department", "location")
			},
		},
		{
			Name:   views.ActiveSoftwareAssignmentsView,
			Roles:  managers,
			Tables: []string{store.SoftwareAssignments, store.SoftwareMaster, store.EmployeeMaster},
			Build: func(t map[string]table.Table, _ security.Principal) views.View {
				return views.ActiveSoftwareAssignments(t[store.SoftwareAssignments].Rows, t[store.SoftwareMaster].Rows, t[store.EmployeeMaster].Rows)
			},
			Filters: func(q Query) ([]filter.Predicate, error) {
				return q.listing("assigned_on",
					[]string{"soft_id", "soft_name", "employee_id", "employee_name"},
					"soft_name", "department", "location")
			},
		},
		{
			Name:  views.EmployeeAssignmentsView,
			Roles: managers,
			Tables: []string{
				store.AssetAssignments, store.AssetsMaster,
				store.SoftwareAssignments, store.SoftwareMaster, store.EmployeeMaster,
			},
			Build: func(t map[string]table.Table, _ security.Principal) views.View {
				employees := t[store.EmployeeMaster].Rows
				return views.CrossEntityAssignments(
					views.ActiveAssetAssignments(t[store.AssetAssignments].Rows, t[store.AssetsMaster].Rows, employees),
					views.ActiveSoftwareAssignments(t[store.SoftwareAssignments].Rows, t[store.SoftwareMaster].Rows, employees),
				)
			},
			Filters: func(q Query) ([]filter.Predicate, error) {
				return q.listing("assigned_on",
					[]string{"employee_id", "employee_name", "asset_name", "soft_name"},
					"assignment_type", "department", "location")
			},
		},
		{
			Name:   views.CurrentHoldingsView,
			Roles:  roles.Any,
			Tables: holdingsTables,
			Build: func(t map[string]table.Table, p security.Principal) views.View {
				return holdings(t, p).Current()
			},
			Filters: holdingsFilters,
		},
		{
			Name:   views.HoldingsHistoryView,
			Roles:  roles.Any,
			Tables: holdingsTables,
			Build: func(t map[string]table.Table, p security.Principal) views.View {
				return holdings(t, p).History()
			},
			Filters: holdingsFilters,
		},
		{
			Name:   views.AttendanceView,
			Roles:  []roles.Role{roles.Hr},
			Tables: []string{attendanceSheet},
			Build: func(t map[string]table.Table, _ security.Principal) views.View {
				return views.Attendance(t[attendanceSheet].Rows)
			},
			Filters: func(q Query) ([]filter.Predicate, error) {
				return q.listing("log_date",
					[]string{"empid", "employee_fname", "employee_lname"},
					"gender", "user_type", "day_status", "leave_status", "work_hours_status")
			},
		},
	}

	pipelines := make(map[string]Pipeline, len(list))
	for _, p := range list {
		pipelines[p.Name] = p
	}
	return pipelines
}

var holdingsTables = []string{
	store.AssetAssignments, store.AssetsMaster, store.SoftwareAssignments, store.SoftwareMaster,
}

// holdings scopes the listing to the caller's employee record. Admins see
// every employee; accounts without an employee record see nothing.
func holdings(t map[string]table.Table, p security.Principal) views.Holdings {
	if !p.IsAdmin() && p.EmployeeID == "" {
		return views.Holdings{}
	}
	h := views.Holdings{
		EmployeeID:          p.EmployeeID,
		AssetAssignments:    t[store.AssetAssignments].Rows,
		Assets:              t[store.AssetsMaster].Rows,
		SoftwareAssignments: t[store.SoftwareAssignments].Rows,
		Software:            t[store.SoftwareMaster].Rows,
	}
	if p.IsAdmin() {
		h.EmployeeID = ""
	}
	return h
}

func holdingsFilters(q Query) ([]filter.Predicate, error) {
	return []filter.Predicate{
		filter.Text{Query: q.Text("q"), Columns: []string{"item_id", "item_name", "employee_name"}},
		filter.In{Column: "assignment_type", Values: q.Values("assignment_type")},
		filter.In{Column: "employee_id", Values: q.Values("employee_id")},
	}, nil
}
