package entity

import "time"

// Sale registra una venta contra el inventario. Inmutable una vez creada;
// solo se elimina con el borrado masivo de datos del dueño.
// ItemName referencia al item por nombre al momento de la venta (no es FK fuerte).
type Sale struct {
	ID        string
	OwnerID   string
	ItemID    string
	ItemName  string
	Quantity  int64 // unidades vendidas, > 0
	CreatedAt time.Time
}
