package dto

import "time"

// RecordSaleRequest body para POST /api/sales. Location es opcional: si el
// mismo nombre existe en varias ubicaciones desambigua la venta; sin él se
// descuenta de la ubicación con más stock.
type RecordSaleRequest struct {
	ItemName       string `json:"item_name"`
	Quantity       int64  `json:"quantity"`
	Location       string `json:"location,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// SaleResponse representación HTTP de una venta.
type SaleResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Sales  []SaleResponse `json:"sales"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
