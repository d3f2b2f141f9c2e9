package models

type CreateSoftwareRequest struct {
	Name           string `json:"soft_name" validate:"required"`
	Status         string `json:"status" validate:"omitempty,oneof=Active Paused"`
	MonthlyPrice   string `json:"monthly_price" validate:"omitempty,numeric"`
	YearlyPrice    string `json:"yearly_price" validate:"omitempty,numeric"`
	RegisteredID   string `json:"registered_id"`
	RegisteredPass string `json:"registered_pass"`
	LoginID        string `json:"login_id"`
	LoginPass      string `json:"login_pass"`
	Links          string `json:"links" validate:"omitempty,url"`
}
