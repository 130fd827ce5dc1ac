package dto

import "time"

// AuditEntryResponse entrada del log de auditoría.
type AuditEntryResponse struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	ItemName  string         `json:"item_name"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// AuditListResponse listado de las últimas N entradas.
type AuditListResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
	Limit   int                  `json:"limit"`
}
