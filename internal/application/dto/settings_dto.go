package dto

import "time"

// SettingsResponse ajustes actuales del dueño.
type SettingsResponse struct {
	Theme             string    `json:"theme"`
	ShopName          string    `json:"shop_name"`
	Locations         []string  `json:"locations"`
	Categories        []string  `json:"categories"`
	DebugMode         bool      `json:"debug_mode"`
	LowStockThreshold int64     `json:"low_stock_threshold"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UpdateSettingsRequest actualización parcial: solo los campos presentes se
// escriben (última escritura gana).
type UpdateSettingsRequest struct {
	Theme             *string  `json:"theme,omitempty"`
	ShopName          *string  `json:"shop_name,omitempty"`
	Locations         []string `json:"locations,omitempty"`
	Categories        []string `json:"categories,omitempty"`
	DebugMode         *bool    `json:"debug_mode,omitempty"`
	LowStockThreshold *int64   `json:"low_stock_threshold,omitempty"`
}
