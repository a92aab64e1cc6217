package postgres

import (
	"context"
	"encoding/json"

	"github.com/baharkarakas/contact-api/internal/models"
	"github.com/baharkarakas/contact-api/internal/repository"
)

type auditLogsRepo struct{ db repository.DBTX }

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) error {
	var details []byte
	if l.Details != nil {
		b, err := json.Marshal(l.Details)
		if err != nil {
			return err
		}
		details = b
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (entity_type, entity_id, action, actor, details) VALUES ($1, $2, $3, $4, $5)`,
		string(l.EntityType), l.EntityID, l.Action, l.Actor, details,
	)
	if err != nil {
		return dbErr("create audit log", err)
	}
	return nil
}
