package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"catalog-service/internal/domain"
	"catalog-service/internal/domain/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ArtworkRepo struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewArtworkRepo(db *mongo.Database) repositories.ArtworkRepository {
	return &ArtworkRepo{
		collection: db.Collection(artworksCollection),
		counters:   db.Collection(countersCollection),
	}
}

// NextID increments the persisted artwork counter. The value never depends on
// the collection size, so deleted ids are not reused.
func (r *ArtworkRepo) NextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": artworkCounterKey},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate artwork id: %w", err)
	}
	return counter.Seq, nil
}

func (r *ArtworkRepo) Create(ctx context.Context, artwork *domain.Artwork) error {
	_, err := r.collection.InsertOne(ctx, artwork)
	if mongo.IsDuplicateKeyError(err) {
		return domain.Conflict(fmt.Sprintf("Artwork id %d is already in use.", artwork.ID))
	}
	if err != nil {
		return fmt.Errorf("insert artwork: %w", err)
	}
	return nil
}

func (r *ArtworkRepo) FindByID(ctx context.Context, id int64) (*domain.Artwork, error) {
	var artwork domain.Artwork
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&artwork)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find artwork %d: %w", id, err)
	}
	return &artwork, nil
}

var updateDocs = map[domain.Operation]func(u domain.Update) bson.M{
	domain.OpSet: func(u domain.Update) bson.M {
		if u.Kind == domain.KindScalar {
			return bson.M{"$set": bson.M{u.Key: u.Value}}
		}
		return bson.M{"$set": bson.M{u.Key: u.Values()}}
	},
	domain.OpPush: func(u domain.Update) bson.M {
		if u.Kind == domain.KindSet {
			return bson.M{"$addToSet": bson.M{u.Key: u.Value}}
		}
		return bson.M{"$push": bson.M{u.Key: u.Value}}
	},
	domain.OpPop: func(u domain.Update) bson.M {
		return bson.M{"$pop": bson.M{u.Key: 1}}
	},
	domain.OpClear: func(u domain.Update) bson.M {
		if u.ClearsToEmpty() {
			return bson.M{"$set": bson.M{u.Key: bson.A{}}}
		}
		return bson.M{"$unset": bson.M{u.Key: ""}}
	},
}

// Apply issues a single update for the artwork. It never upserts.
func (r *ArtworkRepo) Apply(ctx context.Context, id int64, update domain.Update) error {
	build, ok := updateDocs[update.Op]
	if !ok {
		return domain.Invalid(fmt.Sprintf("Unsupported operation %s.", update.Op))
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, build(update))
	if err != nil {
		return fmt.Errorf("update artwork %d: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ArtworkRepo) Delete(ctx context.Context, id int64) (*domain.Artwork, error) {
	var artwork domain.Artwork
	err := r.collection.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&artwork)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete artwork %d: %w", id, err)
	}
	return &artwork, nil
}

func (r *ArtworkRepo) Search(ctx context.Context, query domain.SearchQuery) ([]int64, error) {
	filter := bson.M{}
	if len(query.Tags) > 0 {
		filter["tags"] = bson.M{"$all": query.Tags}
	}
	if len(query.Keywords) > 0 {
		clauses := bson.A{}
		for _, kw := range query.Keywords {
			pattern := primitive.Regex{Pattern: regexp.QuoteMeta(kw), Options: "i"}
			clauses = append(clauses, bson.M{"$or": bson.A{
				bson.M{"title": pattern},
				bson.M{"creator": pattern},
			}})
		}
		filter["$and"] = clauses
	}

	opts := options.Find().
		SetProjection(bson.M{"_id": 0, "id": 1}).
		SetSort(bson.D{{Key: "id", Value: 1}}).
		SetSkip(int64(query.Offset)).
		SetLimit(int64(query.Limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search artworks: %w", err)
	}
	defer cursor.Close(ctx)

	ids := make([]int64, 0, query.Limit)
	for cursor.Next(ctx) {
		var row struct {
			ID int64 `bson:"id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode search result: %w", err)
		}
		ids = append(ids, row.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("search artworks: %w", err)
	}
	return ids, nil
}
