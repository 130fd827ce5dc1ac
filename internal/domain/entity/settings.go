package entity

import "time"

// Valores por defecto de ajustes por dueño.
const (
	DefaultTheme             = "light"
	DefaultLowStockThreshold = 5
)

// Settings son los ajustes por dueño: un único documento mutable,
// última escritura gana.
type Settings struct {
	OwnerID           string
	Theme             string
	ShopName          string
	Locations         []string
	Categories        []string
	DebugMode         bool
	LowStockThreshold int64
	UpdatedAt         time.Time
}

// DefaultSettings devuelve los ajustes iniciales de un dueño.
func DefaultSettings(ownerID string) *Settings {
	return &Settings{
		OwnerID:           ownerID,
		Theme:             DefaultTheme,
		Locations:         []string{"Store"},
		Categories:        []string{},
		LowStockThreshold: DefaultLowStockThreshold,
	}
}
