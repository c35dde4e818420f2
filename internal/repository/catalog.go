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

type CatalogRepo struct {
	tags     *mongo.Collection
	creators *mongo.Collection
}

func NewCatalogRepo(db *mongo.Database) repositories.CatalogRepository {
	return &CatalogRepo{
		tags:     db.Collection(tagsCollection),
		creators: db.Collection(creatorsCollection),
	}
}

func (r *CatalogRepo) FindTag(ctx context.Context, name string) (*domain.Tag, error) {
	var tag domain.Tag
	opts := options.FindOne().SetProjection(bson.M{"_id": 0, "id": 1})
	err := r.tags.FindOne(ctx, bson.M{"name": name}, opts).Decode(&tag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find tag %q: %w", name, err)
	}
	return &tag, nil
}

func (r *CatalogRepo) FindCreator(ctx context.Context, id int64) (*domain.Creator, error) {
	var creator domain.Creator
	opts := options.FindOne().SetProjection(bson.M{"_id": 0, "id": 1})
	err := r.creators.FindOne(ctx, bson.M{"id": id}, opts).Decode(&creator)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find creator %d: %w", id, err)
	}
	return &creator, nil
}
