package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/baharkarakas/contact-api/internal/metrics"
	"github.com/baharkarakas/contact-api/internal/models"
	repo "github.com/baharkarakas/contact-api/internal/repository"
	"github.com/baharkarakas/contact-api/internal/worker"
)

const auditWriteTimeout = 5 * time.Second

// Auditor records successful mutations in the background. A nil *Auditor
// records nothing.
type Auditor struct {
	log repo.AuditLogs
	wp  *worker.Pool
}

func NewAuditor(l repo.AuditLogs, wp *worker.Pool) *Auditor {
	return &Auditor{log: l, wp: wp}
}

func (a *Auditor) record(entity models.AuditEntity, entityID, action, actor string, details map[string]any) {
	metrics.MutationsTotal.WithLabelValues(string(entity), action).Inc()
	if a == nil {
		return
	}

	entry := models.AuditLog{
		EntityType: entity,
		EntityID:   &entityID,
		Action:     action,
		Actor:      actor,
		Details:    details,
	}
	ok := a.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()
		if err := a.log.Create(ctx, entry); err != nil {
			metrics.AuditFailed.WithLabelValues("write_error").Inc()
			slog.Error("audit write", "entity", entity, "id", entityID, "action", action, "err", err)
		}
		metrics.WorkerQueueDepth.Set(float64(a.wp.Len()))
	})
	if !ok {
		metrics.AuditFailed.WithLabelValues("queue_full").Inc()
		slog.Warn("audit dropped", "entity", entity, "id", entityID, "action", action)
	}
	metrics.WorkerQueueDepth.Set(float64(a.wp.Len()))
}

func idString(id int64) string { return strconv.FormatInt(id, 10) }
