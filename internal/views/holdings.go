package views

import (
	"github.com/it407/it-assets/pkg/metadata"
	"github.com/it407/it-assets/pkg/table"
)

const (
	CurrentHoldingsView = "my-assets"
	HoldingsHistoryView = "my-history"
)

var holdingsColumns = []string{
	"assignment_type", "assignment_id", "employee_id", "employee_name", "item_id", "item_name",
	"category", "assigned_on", "returned_on", "return_reason", "remarks",
}

// Holdings are the asset and software assignments of one employee, or of
// everyone when EmployeeID is empty.
type Holdings struct {
	EmployeeID          string
	AssetAssignments    []table.Row
	Assets              []table.Row
	SoftwareAssignments []table.Row
	Software            []table.Row
}

// Current lists the items still assigned, newest first.
func (h Holdings) Current() View {
	rows := h.collect(metadata.StatusAssigned)
	SortByDateDesc(rows, "assigned_on")
	return View{Name: CurrentHoldingsView, Columns: holdingsColumns, Rows: rows}
}

// History lists the returned items, most recently returned first.
func (h Holdings) History() View {
	rows := h.collect(metadata.StatusReturned)
	SortByDateDesc(rows, "returned_on")
	return View{Name: HoldingsHistoryView, Columns: holdingsColumns, Rows: rows}
}

func (h Holdings) collect(status metadata.AssignmentStatus) []table.Row {
	assetRows, _ := joinRows(CurrentHoldingsView, h.owned(h.AssetAssignments, status), "assignment_id", Join{
		Table:    "assets_master",
		Rows:     h.Assets,
		LeftKey:  "asset_id",
		RightKey: "asset_id",
		Columns:  map[string]string{"asset_name": "item_name", "category": "category"},
	})
	softwareRows, _ := joinRows(CurrentHoldingsView, h.owned(h.SoftwareAssignments, status), "assignment_id", Join{
		Table:    "software_master",
		Rows:     h.Software,
		LeftKey:  "soft_id",
		RightKey: "soft_id",
		Columns:  map[string]string{"soft_name": "item_name"},
	})

	rows := make([]table.Row, 0, len(assetRows)+len(softwareRows))
	for _, r := range assetRows {
		r["assignment_type"] = "Asset"
		r["item_id"] = r["asset_id"]
		rows = append(rows, r)
	}
	for _, r := range softwareRows {
		r["assignment_type"] = "Software"
		r["item_id"] = r["soft_id"]
		if _, ok := r["item_name"]; !ok {
			if name, ok := r["soft_name"]; ok {
				r["item_name"] = name
			}
		}
		rows = append(rows, r)
	}
	return rows
}

func (h Holdings) owned(rows []table.Row, status metadata.AssignmentStatus) []table.Row {
	rows = WithStatus(rows, status)
	if h.EmployeeID == "" {
		return rows
	}
	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		if row.Get("employee_id") == h.EmployeeID {
			out = append(out, row)
		}
	}
	return out
}
