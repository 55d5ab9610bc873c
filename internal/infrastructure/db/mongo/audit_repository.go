package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinicore/patients-api/internal/core/domain"
)

const auditCollection = "audit_log"

type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEntry struct {
	Actor      string `bson:"actor"`
	Role       string `bson:"role"`
	Action     string `bson:"action"`
	Resource   string `bson:"resource"`
	ResourceID string `bson:"resource_id,omitempty"`
	Timestamp  int64  `bson:"timestamp"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	doc := mongoAuditEntry{
		Actor:      entry.Actor,
		Role:       entry.Role,
		Action:     entry.Action,
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		Timestamp:  entry.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *MongoAuditRepository) FindRecent(ctx context.Context, limit int64) ([]domain.AuditEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer cur.Close(ctx)

	entries := make([]domain.AuditEntry, 0)
	for cur.Next(ctx) {
		var me mongoAuditEntry
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		entries = append(entries, domain.AuditEntry{
			Actor:      me.Actor,
			Role:       me.Role,
			Action:     me.Action,
			Resource:   me.Resource,
			ResourceID: me.ResourceID,
			Timestamp:  unixToTime(me.Timestamp),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}
