package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/akoskinen/teamstalk/internal/types"
)

// MongoExporter mirrors the final contact records into a MongoDB
// collection, in addition to the CSV file that remains the source of truth.
type MongoExporter struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoExporter connects to MongoDB and verifies the connection.
func NewMongoExporter(uri, database, collection string, logger *slog.Logger) (*MongoExporter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoExporter{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_exporter"),
	}, nil
}

// ExportContacts replaces the collection contents with the given records so
// repeated runs converge to the same state, matching the CSV overwrite.
func (e *MongoExporter) ExportContacts(ctx context.Context, records []types.Contact) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := e.collection.DeleteMany(ctx, map[string]any{}); err != nil {
		return fmt.Errorf("mongodb clear collection: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	docs := make([]any, len(records))
	for i, rec := range records {
		docs[i] = map[string]any{
			"team_name":          rec.TeamName,
			"administrator_name": rec.AdministratorName,
			"contact_info":       rec.ContactInfo,
			"_exported_at":       time.Now(),
		}
	}
	if _, err := e.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("mongodb insert: %w", err)
	}

	e.logger.Info("contacts exported to mongodb", "count", len(records))
	return nil
}

// Close disconnects from MongoDB.
func (e *MongoExporter) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.client.Disconnect(ctx)
}
