package entity

import "time"

// Operaciones que aceptan clave de idempotencia.
const (
	OpUpsertItem = "upsert_item"
	OpRecordSale = "record_sale"
)

// IdempotencyRecord marca una operación ya aplicada para una clave dada por
// el cliente. Se inserta en la misma transacción que la mutación, de modo que
// un reintento ciego devuelve el resultado original sin aplicar nada dos veces.
type IdempotencyRecord struct {
	OwnerID   string
	Key       string
	Operation string
	ResultID  string
	CreatedAt time.Time
}
