package audit

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/plant-decor/internal/models"
)

// Sink stores audit rows.
type Sink interface {
	Write(ctx context.Context, entry *models.AuditLog) error
}

type Logger struct {
	sink Sink
}

func New(sink Sink) *Logger {
	return &Logger{sink: sink}
}

func (l *Logger) Log(
	ctx context.Context,
	actorID string,
	action string,
	entity string,
	entityID string,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}

	return l.sink.Write(ctx, &entry)
}

// ZapSink writes audit rows to the structured log when no database is configured.
type ZapSink struct {
	log *zap.Logger
}

func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log.Named("audit")}
}

func (s *ZapSink) Write(_ context.Context, entry *models.AuditLog) error {
	s.log.Info(entry.Action,
		zap.String("actor_id", entry.ActorID),
		zap.String("entity", entry.Entity),
		zap.String("entity_id", entry.EntityID),
		zap.String("metadata", entry.Metadata),
	)
	return nil
}
