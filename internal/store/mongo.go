package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ramadhan-companion/functions/internal/config"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNotificationStore reads and deletes notification documents in MongoDB
type MongoNotificationStore struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

// Connect opens and pings a MongoDB client
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.WithField("database", cfg.Database).Info("Connected to MongoDB")
	return client, nil
}

// NewMongoNotificationStore binds the store to the configured collection
func NewMongoNotificationStore(client *mongo.Client, cfg config.Config) *MongoNotificationStore {
	collection := client.Database(cfg.Mongo.Database).Collection(cfg.Notifications.Collection)
	return &MongoNotificationStore{Client: client, Collection: collection}
}

// FindOlderThan returns the ids of documents whose timestamp is before cutoff.
// Ids keep their stored BSON type so ObjectIDs and strings both round-trip.
func (s *MongoNotificationStore) FindOlderThan(ctx context.Context, cutoff time.Time) ([]interface{}, error) {
	filter := bson.M{"timestamp": bson.M{"$lt": cutoff}}
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := s.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID interface{} `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}

	ids := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

// DeleteBatch removes all ids in a single DeleteMany
func (s *MongoNotificationStore) DeleteBatch(ctx context.Context, ids []interface{}) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res, err := s.Collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", err)
	}
	return res.DeletedCount, nil
}

// Close disconnects the underlying client
func (s *MongoNotificationStore) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
