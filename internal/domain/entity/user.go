package entity

import "time"

// User es el actor autenticado; su ID actúa como OwnerID
// de todas las colecciones (items, ventas, auditoría, ajustes).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
