package models

import "time"

type AuditEntity string

const (
	AuditUser    AuditEntity = "user"
	AuditContact AuditEntity = "contact"
	AuditAddress AuditEntity = "address"
)

type AuditLog struct {
	ID         int64          `json:"id"`
	EntityType AuditEntity    `json:"entity_type"`
	EntityID   *string        `json:"entity_id"`
	Action     string         `json:"action"`
	Actor      string         `json:"actor"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}
