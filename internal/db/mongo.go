package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens a pooled client and pings the server. The caller owns the
// client and must Disconnect it.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	// Check connection
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Indexes lists the unique constraints the catalog relies on.
func Indexes() map[string]mongo.IndexModel {
	return map[string]mongo.IndexModel{
		"artworks": {
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("artwork_id_unique"),
		},
		"users": {
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		"tags": {
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("tag_name"),
		},
		"creators": {
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("creator_id"),
		},
	}
}

func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for collection, model := range Indexes() {
		if _, err := database.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", collection, err)
		}
	}
	return nil
}
