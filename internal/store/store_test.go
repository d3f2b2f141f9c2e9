package store

import (
	"testing"

	"github.com/it407/it-assets/pkg/table"

	"github.com/stretchr/testify/assert"
)

func TestOverwriteHeader(t *testing.T) {
	tests := []struct {
		name     string
		table    string
		stored   []string
		rows     []table.Row
		expected []string
	}{
		{
			name:     "stored header covers every key",
			table:    AssetsMaster,
			stored:   []string{"asset_id", "is_active"},
			rows:     []table.Row{{"asset_id": "AST-001", "is_active": "true"}},
			expected: []string{"asset_id", "is_active"},
		},
		{
			name:   "canonical columns follow schema order",
			table:  AssetAssignments,
			stored: []string{"assignment_id", "asset_id", "assignment_status"},
			rows: []table.Row{
				{"assignment_id": "ASN-0001", "return_reason": "Lost"},
				{"assignment_id": "ASN-0002", "returned_on": "2024-05-10"},
			},
			expected: []string{"assignment_id", "asset_id", "assignment_status", "returned_on", "return_reason"},
		},
		{
			name:     "unknown keys are sorted after canonical ones",
			table:    AssetsMaster,
			stored:   []string{"Asset_ID"},
			rows:     []table.Row{{"asset_id": "AST-001", "zone": "B", "Updated_At": "x", "bay": "4"}},
			expected: []string{"Asset_ID", "updated_at", "bay", "zone"},
		},
		{
			name:     "empty table uses the schema",
			table:    EmployeeMaster,
			rows:     []table.Row{{"employee_id": "E1"}},
			expected: []string{"employee_id", "employee_name", "department", "location", "employment_status"},
		},
		{
			name:     "unknown table without header uses sorted keys",
			table:    "scratch",
			rows:     []table.Row{{"b": "2", "a": "1"}, {"c": "3"}},
			expected: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OverwriteHeader(tt.table, tt.stored, tt.rows))
		})
	}
}
