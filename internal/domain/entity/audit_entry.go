package entity

import "time"

// Acciones registradas en el log de auditoría.
const (
	ActionAdd            = "add"
	ActionUpdateQuantity = "update_quantity"
	ActionDelete         = "delete"
	ActionSale           = "sale"
	ActionImportAdd      = "import_add"
	ActionImportUpdate   = "import_update"
	ActionRestore        = "restore"
	ActionBulkImport     = "bulk_import"
	ActionEdit           = "edit"
)

// AuditEntry es una entrada del log de mutaciones: append-only, una por
// mutación del ledger, nunca modificada después de creada.
// Seq lo asigna la base (secuencia monótona) y desempata el orden cuando
// dos entradas comparten timestamp.
type AuditEntry struct {
	ID        string
	OwnerID   string
	Action    string
	ItemName  string
	Details   map[string]any
	Seq       int64
	CreatedAt time.Time
}
