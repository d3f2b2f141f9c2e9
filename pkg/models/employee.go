package models

import "github.com/it407/it-assets/pkg/table"

type Employee struct {
	ID               string `json:"employee_id"`
	Name             string `json:"employee_name"`
	Department       string `json:"department"`
	Location         string `json:"location"`
	EmploymentStatus string `json:"employment_status"`
}

func EmployeeFromRow(row table.Row) Employee {
	return Employee{
		ID:               row.Get("employee_id"),
		Name:             row.Get("employee_name"),
		Department:       row.Get("department"),
		Location:         row.Get("location"),
		EmploymentStatus: row.Get("employment_status"),
	}
}
