package views

import (
	"github.com/it407/it-assets/pkg/metadata"
	"github.com/it407/it-assets/pkg/table"
)

const (
	ActiveAssetAssignmentsView    = "asset-assignments"
	ActiveSoftwareAssignmentsView = "software-assignments"
	EmployeeAssignmentsView       = "employee-assignments"
)

var (
	activeAssetColumns = []string{
		"assignment_id", "asset_id", "asset_name", "category", "employee_id",
		"employee_name", "department", "location", "assigned_on",
	}
	activeSoftwareColumns = []string{
		"assignment_id", "employee_id", "employee_name", "soft_id", "soft_name",
		"links", "department", "location", "assigned_on",
	}
	crossEntityColumns = []string{
		"assignment_type", "assignment_id", "employee_id", "employee_name", "department",
		"location", "asset_id", "asset_name", "category", "soft_id", "soft_name", "links", "assigned_on",
	}
)

var employeeColumns = map[string]string{
	"employee_name": "employee_name",
	"department":    "department",
	"location":      "location",
}

// ActiveAssetAssignments lists Assigned asset rows joined to the asset
// catalog and the employee master. The location column is the employee's.
func ActiveAssetAssignments(assignments, assets, employees []table.Row) View {
	rows, diagnostics := joinRows(ActiveAssetAssignmentsView, WithStatus(assignments, metadata.StatusAssigned), "assignment_id",
		Join{
			Table:    "assets_master",
			Rows:     assets,
			LeftKey:  "asset_id",
			RightKey: "asset_id",
			Columns:  map[string]string{"asset_name": "asset_name", "category": "category", "location": "asset_location"},
			Inner:    true,
		},
		Join{
			Table:    "employee_master",
			Rows:     employees,
			LeftKey:  "employee_id",
			RightKey: "employee_id",
			Columns:  employeeColumns,
			Inner:    true,
		},
	)
	SortByDateDesc(rows, "assigned_on")

	return View{
		Name:        ActiveAssetAssignmentsView,
		Columns:     activeAssetColumns,
		Rows:        rows,
		Diagnostics: diagnostics,
	}
}

// ActiveSoftwareAssignments lists Assigned software rows joined to the
// software catalog and the employee master.
func ActiveSoftwareAssignments(assignments, software, employees []table.Row) View {
	rows, diagnostics := joinRows(ActiveSoftwareAssignmentsView, WithStatus(assignments, metadata.StatusAssigned), "assignment_id",
		Join{
			Table:    "software_master",
			Rows:     software,
			LeftKey:  "soft_id",
			RightKey: "soft_id",
			Columns:  map[string]string{"soft_name": "soft_name", "links": "links"},
			Inner:    true,
		},
		Join{
			Table:    "employee_master",
			Rows:     employees,
			LeftKey:  "employee_id",
			RightKey: "employee_id",
			Columns:  employeeColumns,
			Inner:    true,
		},
	)
	SortByDateDesc(rows, "assigned_on")

	return View{
		Name:        ActiveSoftwareAssignmentsView,
		Columns:     activeSoftwareColumns,
		Rows:        rows,
		Diagnostics: diagnostics,
	}
}

// CrossEntityAssignments unions active asset and software assignments.
// Asset rows report the asset's location, software rows the employee's.
func CrossEntityAssignments(assetView, softwareView View) View {
	rows := make([]table.Row, 0, len(assetView.Rows)+len(softwareView.Rows))

	for _, r := range assetView.Rows {
		row := project(r, "assignment_id", "employee_id", "employee_name", "department", "asset_id", "asset_name", "category", "assigned_on")
		row["assignment_type"] = "Asset"
		if location, ok := r["asset_location"]; ok {
			row["location"] = location
		}
		rows = append(rows, row)
	}
	for _, r := range softwareView.Rows {
		row := project(r, "assignment_id", "employee_id", "employee_name", "department", "location", "soft_id", "soft_name", "links", "assigned_on")
		row["assignment_type"] = "Software"
		rows = append(rows, row)
	}
	SortByDateDesc(rows, "assigned_on")

	diagnostics := make([]Diagnostic, 0, len(assetView.Diagnostics)+len(softwareView.Diagnostics))
	diagnostics = append(diagnostics, assetView.Diagnostics...)
	diagnostics = append(diagnostics, softwareView.Diagnostics...)

	return View{
		Name:        EmployeeAssignmentsView,
		Columns:     crossEntityColumns,
		Rows:        rows,
		Diagnostics: diagnostics,
	}
}

func project(row table.Row, columns ...string) table.Row {
	out := make(table.Row, len(columns)+1)
	for _, c := range columns {
		if v, ok := row[c]; ok {
			out[c] = v
		}
	}
	return out
}
