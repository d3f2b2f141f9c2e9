package models

import "github.com/it407/it-assets/pkg/table"

type Credential struct {
	ID        string `json:"credential_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	LoginID   string `json:"login_id"`
	Password  string `json:"password"`
	LinkURL   string `json:"link_url"`
	Remark    string `json:"remark"`
	CreatedAt string `json:"created_at"`
}

func (c Credential) ToRow() table.Row {
	return table.Row{
		"credential_id": c.ID,
		"name":          c.Name,
		"category":      c.Category,
		"login_id":      c.LoginID,
		"password":      c.Password,
		"link_url":      c.LinkURL,
		"remark":        c.Remark,
		"created_at":    c.CreatedAt,
	}
}

func CredentialFromRow(row table.Row) Credential {
	return Credential{
		ID:        row.Get("credential_id"),
		Name:      row.Get("name"),
		Category:  row.Get("category"),
		LoginID:   row.Get("login_id"),
		Password:  row.Get("password"),
		LinkURL:   row.Get("link_url"),
		Remark:    row.Get("remark"),
		CreatedAt: row.Get("created_at"),
	}
}

func (c Credential) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   c.ID,
		ResourceType: "credential",
	}
}

// NetworkCredential holds access details of a CCTV recorder or Wi-Fi access point.
type NetworkCredential struct {
	Location   string `json:"location"`
	DeviceType string `json:"device_type"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	IPAddress  string `json:"ip_add"`
	SSID       string `json:"ssid"`
	SSPassword string `json:"ss_password"`
	MAC        string `json:"mac"`
	Remarks    string `json:"remarks"`
	CreatedAt  string `json:"created_at"`
}

func (n NetworkCredential) ToRow() table.Row {
	return table.Row{
		"location":    n.Location,
		"device_type": n.DeviceType,
		"username":    n.Username,
		"password":    n.Password,
		"ip_add":      n.IPAddress,
		"ssid":        n.SSID,
		"ss_password": n.SSPassword,
		"mac":         n.MAC,
		"remarks":     n.Remarks,
		"created_at":  n.CreatedAt,
	}
}

func NetworkCredentialFromRow(row table.Row) NetworkCredential {
	return NetworkCredential{
		Location:   row.Get("location"),
		DeviceType: row.Get("device_type"),
		Username:   row.Get("username"),
		Password:   row.Get("password"),
		IPAddress:  row.Get("ip_add"),
		SSID:       row.Get("ssid"),
		SSPassword: row.Get("ss_password"),
		MAC:        row.Get("mac"),
		Remarks:    row.Get("remarks"),
		CreatedAt:  row.Get("created_at"),
	}
}

func (n NetworkCredential) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   n.Location + "/" + n.DeviceType,
		ResourceType: "network_credential",
	}
}
