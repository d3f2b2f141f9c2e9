package models

import (
	"encoding/json"

	"github.com/it407/it-assets/pkg/table"
)

type AuditLog struct {
	EntryID      string                 `json:"entry_id"`
	ResourceID   string                 `json:"resource_id"`
	ResourceType string                 `json:"resource_type"`
	Action       string                 `json:"action"` // Captures what happened (e.g., create, assign, return, deactivate).
	Data         map[string]interface{} `json:"data"`
	UserID       string                 `json:"user_id,omitempty"`
	CreatedAt    string                 `json:"created_at"`
}

func (a AuditLog) ToRow() (table.Row, error) {
	data, err := json.Marshal(a.Data)
	if err != nil {
		return nil, err
	}

	return table.Row{
		"entry_id":      a.EntryID,
		"resource_type": a.ResourceType,
		"resource_id":   a.ResourceID,
		"action":        a.Action,
		"user_id":       a.UserID,
		"data":          string(data),
		"created_at":    a.CreatedAt,
	}, nil
}
