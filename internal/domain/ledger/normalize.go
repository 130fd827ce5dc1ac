package ledger

import (
	"strings"

	"github.com/chainsync/chainsync-lite/internal/domain/entity"
)

// Valores por defecto aplicados en la frontera del ledger (una sola vez,
// no repartidos por capas).
const (
	DefaultCategory = "Uncategorized"
	DefaultLocation = "Store"
)

// NormalizeName recorta espacios alrededor del nombre.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NameKey devuelve la clave de deduplicación: nombre recortado en minúsculas.
// Dos add-requests con el mismo NameKey (y misma ubicación) se fusionan en
// una sola fila, nunca se duplican.
func NameKey(name string) string {
	return strings.ToLower(NormalizeName(name))
}

// ApplyDefaults normaliza un item antes de persistirlo: nombre recortado,
// NameKey calculado, categoría y ubicación por defecto, mapa de campos
// personalizados nunca nil.
func ApplyDefaults(item *entity.Item) {
	item.Name = NormalizeName(item.Name)
	item.NameKey = NameKey(item.Name)
	if strings.TrimSpace(item.Category) == "" {
		item.Category = DefaultCategory
	} else {
		item.Category = strings.TrimSpace(item.Category)
	}
	if strings.TrimSpace(item.Location) == "" {
		item.Location = DefaultLocation
	} else {
		item.Location = strings.TrimSpace(item.Location)
	}
	if item.CustomFields == nil {
		item.CustomFields = map[string]string{}
	}
}

// SameLogicalItem reporta si un candidato (name, location) corresponde a la
// misma fila lógica que el item existente: igualdad case-insensitive del
// nombre y, si location no es vacío, igualdad exacta de ubicación.
func SameLogicalItem(existing *entity.Item, name, location string) bool {
	if existing.NameKey != NameKey(name) {
		return false
	}
	if location == "" {
		return true
	}
	return existing.Location == location
}
