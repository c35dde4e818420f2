package repositories

import (
	"context"
	"time"

	"catalog-service/internal/domain"
)

// Lookups return domain.ErrNotFound when the record is absent. Create returns
// domain.ErrConflict when a unique index rejects the record.

type ArtworkRepository interface {
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, artwork *domain.Artwork) error
	FindByID(ctx context.Context, id int64) (*domain.Artwork, error)
	Apply(ctx context.Context, id int64, update domain.Update) error
	Delete(ctx context.Context, id int64) (*domain.Artwork, error)
	Search(ctx context.Context, query domain.SearchQuery) ([]int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Delete(ctx context.Context, username string) (*domain.User, error)
	ListSummaries(ctx context.Context, username string) ([]domain.ListSummary, error)
	CreateList(ctx context.Context, username, name string) error
	AddToList(ctx context.Context, username, name string, artworkID int64) error
	RemoveFromList(ctx context.Context, username, name string, artworkID int64) error
	DeleteList(ctx context.Context, username, name string) (*domain.List, error)
}

type CatalogRepository interface {
	FindTag(ctx context.Context, name string) (*domain.Tag, error)
	FindCreator(ctx context.Context, id int64) (*domain.Creator, error)
}

// ArtworkCache is a best effort read-through cache. A miss is (nil, nil).
//
// Readers take Version before loading from the store and hand it to Fill.
// Invalidate bumps the version, so a fill that raced with a mutation is
// dropped instead of caching the old record.
type ArtworkCache interface {
	Get(ctx context.Context, id int64) (*domain.Artwork, error)
	Version(ctx context.Context, id int64) (int64, error)
	Fill(ctx context.Context, artwork *domain.Artwork, version int64, ttl time.Duration) error
	Invalidate(ctx context.Context, id int64) error
}
