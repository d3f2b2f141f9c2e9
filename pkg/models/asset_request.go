package models

type CreateAssetRequest struct {
	Name         string `json:"asset_name" validate:"required"`
	Category     string `json:"category" validate:"required"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	PurchaseDate string `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	WarrantyEnd  string `json:"warranty_end" validate:"omitempty,datetime=2006-01-02"`
	Location     string `json:"location" validate:"required"`
	IsActive     *bool  `json:"is_active"`
	Quantity     int    `json:"quantity" validate:"gte=0,lte=500"`
}

type AssetOptions struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
}
