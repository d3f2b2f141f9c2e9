package models

import (
	"github.com/it407/it-assets/pkg/metadata"
	"github.com/it407/it-assets/pkg/table"
)

// Assignment links one catalog item to one employee. ItemKey names the column
// holding the item id (asset_id or soft_id) in the assignment table.
type Assignment struct {
	ID           string                    `json:"assignment_id"`
	ItemKey      string                    `json:"-"`
	ItemID       string                    `json:"item_id"`
	ItemName     string                    `json:"item_name,omitempty"`
	EmployeeID   string                    `json:"employee_id"`
	EmployeeName string                    `json:"employee_name"`
	AssignedOn   string                    `json:"assigned_on"`
	ReturnedOn   string                    `json:"returned_on"`
	Status       metadata.AssignmentStatus `json:"assignment_status"`
	Remarks      string                    `json:"remarks"`
	ReturnReason string                    `json:"return_reason"`
	CreatedAt    string                    `json:"created_at"`
}

func (a Assignment) ToRow(itemNameKey string) table.Row {
	row := table.Row{
		"assignment_id":     a.ID,
		a.ItemKey:           a.ItemID,
		"employee_id":       a.EmployeeID,
		"employee_name":     a.EmployeeName,
		"assigned_on":       a.AssignedOn,
		"returned_on":       a.ReturnedOn,
		"assignment_status": a.Status.String(),
		"remarks":           a.Remarks,
		"return_reason":     a.ReturnReason,
		"created_at":        a.CreatedAt,
	}
	if itemNameKey != "" {
		row[itemNameKey] = a.ItemName
	}
	return row
}

func AssignmentFromRow(row table.Row, itemKey, itemNameKey string) Assignment {
	a := Assignment{
		ID:           row.Get("assignment_id"),
		ItemKey:      itemKey,
		ItemID:       row.Get(itemKey),
		EmployeeID:   row.Get("employee_id"),
		EmployeeName: row.Get("employee_name"),
		AssignedOn:   row.Get("assigned_on"),
		ReturnedOn:   row.Get("returned_on"),
		Status:       metadata.AssignmentStatus(row.Get("assignment_status")),
		Remarks:      row.Get("remarks"),
		ReturnReason: row.Get("return_reason"),
		CreatedAt:    row.Get("created_at"),
	}
	if itemNameKey != "" {
		a.ItemName = row.Get(itemNameKey)
	}
	return a
}

func (a Assignment) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "assignment",
	}
}
