package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/domain"
	"catalog-service/internal/domain/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) repositories.UserRepository {
	return &UserRepo{
		collection: db.Collection(usersCollection),
	}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.Conflict(domain.ReasonUsernameTaken)
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	return &user, nil
}

func (r *UserRepo) Delete(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOneAndDelete(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete user %q: %w", username, err)
	}
	return &user, nil
}

// ListSummaries computes name and size server side so list contents are never
// sent over the wire.
func (r *UserRepo) ListSummaries(ctx context.Context, username string) ([]domain.ListSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"username": username}}},
		{{Key: "$project", Value: bson.M{
			"_id": 0,
			"lists": bson.M{"$map": bson.M{
				"input": bson.M{"$ifNull": bson.A{"$lists", bson.A{}}},
				"as":    "l",
				"in": bson.M{
					"name": "$$l.name",
					"size": bson.M{"$size": bson.M{"$ifNull": bson.A{"$$l.artworks", bson.A{}}}},
				},
			}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list summaries for %q: %w", username, err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("list summaries for %q: %w", username, err)
		}
		return nil, domain.ErrNotFound
	}
	var row struct {
		Lists []domain.ListSummary `bson:"lists"`
	}
	if err := cursor.Decode(&row); err != nil {
		return nil, fmt.Errorf("decode list summaries: %w", err)
	}
	if row.Lists == nil {
		row.Lists = make([]domain.ListSummary, 0)
	}
	return row.Lists, nil
}

// CreateList appends an empty list unless the user already owns one with the
// same name.
func (r *UserRepo) CreateList(ctx context.Context, username, name string) error {
	list := domain.NewList(name)
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"username": username, "lists.name": bson.M{"$ne": name}},
		bson.M{"$push": bson.M{"lists": list}},
	)
	if err != nil {
		return fmt.Errorf("create list %q for %q: %w", name, username, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	if _, err := r.FindByUsername(ctx, username); err != nil {
		return err
	}
	return domain.Conflict(fmt.Sprintf("List %q already exists.", name))
}

func (r *UserRepo) AddToList(ctx context.Context, username, name string, artworkID int64) error {
	return r.updateList(ctx, username, name, bson.M{"$push": bson.M{"lists.$.artworks": artworkID}})
}

func (r *UserRepo) RemoveFromList(ctx context.Context, username, name string, artworkID int64) error {
	return r.updateList(ctx, username, name, bson.M{"$pull": bson.M{"lists.$.artworks": artworkID}})
}

func (r *UserRepo) updateList(ctx context.Context, username, name string, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"username": username, "lists.name": name}, update)
	if err != nil {
		return fmt.Errorf("update list %q for %q: %w", name, username, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) DeleteList(ctx context.Context, username, name string) (*domain.List, error) {
	var before domain.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"username": username, "lists.name": name},
		bson.M{"$pull": bson.M{"lists": bson.M{"name": name}}},
		opts,
	).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete list %q for %q: %w", name, username, err)
	}
	list, ok := before.List(name)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return list, nil
}
