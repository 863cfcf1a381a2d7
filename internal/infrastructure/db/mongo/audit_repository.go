package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gatewise/auth-service/internal/core/domain"
	"github.com/gatewise/auth-service/internal/core/ports"
)

const auditCollection = "auth_audit"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// Insert appends one event to the audit trail. Entries are immutable once
// written.
func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	doc := bson.M{
		"action":      event.Action,
		"outcome":     event.Outcome,
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Subject != "" {
		doc["subject"] = event.Subject
	}
	if event.Reason != "" {
		doc["reason"] = event.Reason
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
