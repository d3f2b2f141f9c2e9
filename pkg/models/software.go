package models

import (
	"github.com/it407/it-assets/pkg/metadata"
	"github.com/it407/it-assets/pkg/table"
)

type Software struct {
	ID             string                  `json:"soft_id"`
	Name           string                  `json:"soft_name"`
	Status         metadata.SoftwareStatus `json:"status"`
	MonthlyPrice   string                  `json:"monthly_price"`
	YearlyPrice    string                  `json:"yearly_price"`
	RegisteredID   string                  `json:"registered_id"`
	RegisteredPass string                  `json:"registered_pass"`
	LoginID        string                  `json:"login_id"`
	LoginPass      string                  `json:"login_pass"`
	Links          string                  `json:"links"`
	CreatedAt      string                  `json:"created_at"`
	UpdatedAt      string                  `json:"updated_at"`
}

func (s Software) ToRow() table.Row {
	return table.Row{
		"soft_id":         s.ID,
		"soft_name":       s.Name,
		"status":          s.Status.String(),
		"monthly_price":   s.MonthlyPrice,
		"yearly_price":    s.YearlyPrice,
		"registered_id":   s.RegisteredID,
		"registered_pass": s.RegisteredPass,
		"login_id":        s.LoginID,
		"login_pass":      s.LoginPass,
		"links":           s.Links,
		"created_at":      s.CreatedAt,
		"updated_at":      s.UpdatedAt,
	}
}

func SoftwareFromRow(row table.Row) Software {
	return Software{
		ID:             row.Get("soft_id"),
		Name:           row.Get("soft_name"),
		Status:         metadata.SoftwareStatus(row.Get("status")),
		MonthlyPrice:   row.Get("monthly_price"),
		YearlyPrice:    row.Get("yearly_price"),
		RegisteredID:   row.Get("registered_id"),
		RegisteredPass: row.Get("registered_pass"),
		LoginID:        row.Get("login_id"),
		LoginPass:      row.Get("login_pass"),
		Links:          row.Get("links"),
		CreatedAt:      row.Get("created_at"),
		UpdatedAt:      row.Get("updated_at"),
	}
}

func (s Software) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   s.ID,
		ResourceType: "software",
	}
}
