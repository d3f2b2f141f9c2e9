package models

import (
	"strconv"

	"github.com/it407/it-assets/pkg/table"
)

type Asset struct {
	ID           string `json:"asset_id"`
	Name         string `json:"asset_name"`
	Category     string `json:"category"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	PurchaseDate string `json:"purchase_date"`
	WarrantyEnd  string `json:"warranty_end"`
	Location     string `json:"location"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (a Asset) ToRow() table.Row {
	return table.Row{
		"asset_id":      a.ID,
		"asset_name":    a.Name,
		"category":      a.Category,
		"brand":         a.Brand,
		"model":         a.Model,
		"purchase_date": a.PurchaseDate,
		"warranty_end":  a.WarrantyEnd,
		"location":      a.Location,
		"is_active":     strconv.FormatBool(a.IsActive),
		"created_at":    a.CreatedAt,
		"updated_at":    a.UpdatedAt,
	}
}

func AssetFromRow(row table.Row) Asset {
	return Asset{
		ID:           row.Get("asset_id"),
		Name:         row.Get("asset_name"),
		Category:     row.Get("category"),
		Brand:        row.Get("brand"),
		Model:        row.Get("model"),
		PurchaseDate: row.Get("purchase_date"),
		WarrantyEnd:  row.Get("warranty_end"),
		Location:     row.Get("location"),
		IsActive:     !table.IsFalsy(row.Get("is_active")),
		CreatedAt:    row.Get("created_at"),
		UpdatedAt:    row.Get("updated_at"),
	}
}

func (a Asset) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "asset",
	}
}
