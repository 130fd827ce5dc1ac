package dto

import "time"

// UpsertItemRequest body para POST /api/items. Si ya existe un item con el
// mismo nombre (case-insensitive) y ubicación, las cantidades se suman.
type UpsertItemRequest struct {
	Name           string            `json:"name"`
	Quantity       int64             `json:"quantity"`
	Category       string            `json:"category,omitempty"`
	Location       string            `json:"location,omitempty"`
	CustomFields   map[string]string `json:"custom_fields,omitempty"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id (edición absoluta).
type UpdateItemRequest struct {
	Name         *string           `json:"name,omitempty"`
	Quantity     *int64            `json:"quantity,omitempty"` // valor absoluto, >= 0
	Category     *string           `json:"category,omitempty"`
	Location     *string           `json:"location,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
}

// ItemResponse representación HTTP de un item.
type ItemResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Quantity     int64             `json:"quantity"`
	Category     string            `json:"category"`
	Location     string            `json:"location"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ItemListResponse listado paginado de items.
type ItemListResponse struct {
	Items  []ItemResponse `json:"items"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ImportSummary resultado de una importación masiva CSV.
type ImportSummary struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
