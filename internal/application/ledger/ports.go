package ledger

import (
	"context"

	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación del item, la venta,
// la entrada de auditoría y la clave de idempotencia se apliquen como una
// sola unidad (todo o nada).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		sales repository.SaleRepository,
		audit repository.AuditRepository,
		settings repository.SettingsRepository,
		idem repository.IdempotencyRepository,
	) error) error
}

// Notifier publica cambios por colección después de un commit exitoso.
// Los lectores suscritos son eventualmente consistentes respecto a la escritura.
type Notifier interface {
	Publish(ownerID, collection, action string)
}

// Colecciones publicadas en el feed de cambios.
const (
	CollectionInventory = "inventory"
	CollectionSales     = "sales"
	CollectionAudit     = "audit"
	CollectionSettings  = "settings"
)
