package models

type CreateCredentialRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	LoginID  string `json:"login_id" validate:"required"`
	Password string `json:"password" validate:"required"`
	LinkURL  string `json:"link_url"`
	Remark   string `json:"remark"`
}

type CreateNetworkCredentialRequest struct {
	Location   string `json:"location" validate:"required"`
	DeviceType string `json:"device_type" validate:"required"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	IPAddress  string `json:"ip_add" validate:"omitempty,ip"`
	SSID       string `json:"ssid"`
	SSPassword string `json:"ss_password"`
	MAC        string `json:"mac" validate:"omitempty,mac"`
	Remarks    string `json:"remarks"`
}
