package entity

import "time"

// Item representa una fila de inventario con cantidad disponible, por dueño.
// NameKey es la clave de deduplicación: nombre en minúsculas y sin espacios
// alrededor; la unicidad real es (OwnerID, NameKey, Location).
type Item struct {
	ID           string
	OwnerID      string
	Name         string
	NameKey      string
	Quantity     int64 // nunca negativo
	Category     string
	Location     string
	CustomFields map[string]string // campos abiertos, ej. price
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
