package dto

import "github.com/shopspring/decimal"

// CategoryCount conteo de items y unidades por categoría.
type CategoryCount struct {
	Category string `json:"category"`
	Items    int    `json:"items"`
	Units    int64  `json:"units"`
}

// LowStockItem item en o por debajo del umbral de stock bajo.
type LowStockItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Location string `json:"location"`
}

// SummaryResponse reporte de inventario del dueño.
type SummaryResponse struct {
	TotalItems     int             `json:"total_items"`
	TotalUnits     int64           `json:"total_units"`
	InventoryValue decimal.Decimal `json:"inventory_value"` // Σ quantity × price (campo custom)
	Categories     []CategoryCount `json:"categories"`
	LowStock       []LowStockItem  `json:"low_stock"`
	Threshold      int64           `json:"low_stock_threshold"`
}
