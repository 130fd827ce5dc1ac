package dto

import "time"

// BackupDocument snapshot JSON completo de los datos de un dueño.
type BackupDocument struct {
	OwnerID   string               `json:"owner_id"`
	Timestamp time.Time            `json:"timestamp"`
	Inventory []ItemResponse       `json:"inventory"`
	Sales     []SaleResponse       `json:"sales"`
	Audit     []AuditEntryResponse `json:"audit"`
	Settings  *SettingsResponse    `json:"settings,omitempty"`
}

// RestoreSummary resultado de restaurar un backup (solo items se re-importan;
// ventas y auditoría del snapshot son historia, no estado re-aplicable).
type RestoreSummary struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
