package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campuslink/events-api/internal/core/domain"
	"github.com/campuslink/events-api/internal/core/ports"
)

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

// Insert persists an audit entry to the audit_log collection.
func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	doc := bson.M{
		"event_id":     entry.EventID,
		"actor_id":     entry.ActorID,
		"action":       entry.Action,
		"timestamp":    entry.Timestamp.UTC(),
		"persisted_at": time.Now().UTC(),
	}
	if entry.Detail != "" {
		doc["detail"] = entry.Detail
	}

	_, err := r.db.Collection("audit_log").InsertOne(ctx, doc)
	return err
}
