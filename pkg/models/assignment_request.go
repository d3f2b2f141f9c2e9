package models

type AssignRequest struct {
	ItemID     string `json:"item_id" validate:"required"`
	EmployeeID string `json:"employee_id" validate:"required"`
	AssignedOn string `json:"assigned_on" validate:"omitempty,datetime=2006-01-02"`
	Remarks    string `json:"remarks"`
}

// ReturnRequest identifies the assignment either by AssignmentID or by the
// item and employee pair.
type ReturnRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required_without_all=ItemID EmployeeID"`
	ItemID       string `json:"item_id" validate:"required_without=AssignmentID"`
	EmployeeID   string `json:"employee_id" validate:"required_without=AssignmentID"`
	Reason       string `json:"return_reason" validate:"required"`
	ReturnedOn   string `json:"returned_on" validate:"omitempty,datetime=2006-01-02"`
}
