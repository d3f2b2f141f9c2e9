package store

import (
	"sort"

	"github.com/it407/it-assets/pkg/table"
)

const (
	AssetsMaster        = "assets_master"
	AssetAssignments    = "asset_assignments"
	SoftwareMaster      = "software_master"
	SoftwareAssignments = "software_assignments"
	CredentialsMaster   = "credentials_master"
	NetworkCredentials  = "cctv_wifi_credential"
	EmployeeMaster      = "employee_master"
	UserAccess          = "user_access"
	AuditLog            = "audit_log"
)

var schemas = map[string][]string{
	AssetsMaster: {
		"asset_id", "asset_name", "category", "brand", "model", "purchase_date",
		"warranty_end", "location", "is_active", "created_at", "updated_at",
	},
	AssetAssignments: {
		"assignment_id", "asset_id", "employee_id", "employee_name", "assigned_on",
		"returned_on", "assignment_status", "remarks", "return_reason", "created_at",
	},
	SoftwareMaster: {
		"soft_id", "soft_name", "status", "monthly_price", "yearly_price", "registered_id",
		"registered_pass", "login_id", "login_pass", "links", "created_at", "updated_at",
	},
	SoftwareAssignments: {
		"assignment_id", "soft_id", "soft_name", "employee_id", "employee_name", "assigned_on",
		"returned_on", "assignment_status", "remarks", "return_reason", "created_at",
	},
	CredentialsMaster: {
		"credential_id", "name", "category", "login_id", "password", "link_url", "remark", "created_at",
	},
	NetworkCredentials: {
		"location", "device_type", "username", "password", "ip_add", "ssid",
		"ss_password", "mac", "remarks", "created_at",
	},
	EmployeeMaster: {
		"employee_id", "employee_name", "department", "location", "employment_status",
	},
	UserAccess: {
		"user_id", "employee_id", "email", "password", "role", "is_active",
	},
	AuditLog: {
		"entry_id", "resource_type", "resource_id", "action", "user_id", "data", "created_at",
	},
}

// Schema returns the canonical header of a known table.
func Schema(name string) ([]string, bool) {
	header, ok := schemas[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), header...), true
}

func SortedKeys(row table.Row) []string {
	keys := make([]string, 0, len(row))
	for k := range table.NormalizeRow(row) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
