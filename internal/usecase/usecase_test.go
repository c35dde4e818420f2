package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"catalog-service/internal/domain"
	"catalog-service/internal/domain/repositories"
	"catalog-service/internal/messaging"
	"catalog-service/internal/repository/memory"

	"github.com/charmbracelet/log"
)

var discard = log.New(io.Discard)

// mapCache mirrors the versioned fill contract of the Redis cache.
type mapCache struct {
	mu       sync.Mutex
	entries  map[int64]*domain.Artwork
	versions map[int64]int64
}

func newMapCache() *mapCache {
	return &mapCache{
		entries:  make(map[int64]*domain.Artwork),
		versions: make(map[int64]int64),
	}
}

func (c *mapCache) Get(_ context.Context, id int64) (*domain.Artwork, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.entries[id]; ok {
		return a.Clone(), nil
	}
	return nil, nil
}

func (c *mapCache) Version(_ context.Context, id int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[id], nil
}

func (c *mapCache) Fill(_ context.Context, a *domain.Artwork, version int64, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[a.ID] == version {
		c.entries[a.ID] = a.Clone()
	}
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[id]++
	delete(c.entries, id)
	return nil
}

type recorder struct {
	mu     sync.Mutex
	events []messaging.Event
}

func (r *recorder) Publish(_ context.Context, e messaging.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Subject)
	}
	return out
}

// countingRepo records how many writes reach the store.
type countingRepo struct {
	repositories.ArtworkRepository
	mu      sync.Mutex
	applies int
}

func (r *countingRepo) Apply(ctx context.Context, id int64, u domain.Update) error {
	r.mu.Lock()
	r.applies++
	r.mu.Unlock()
	return r.ArtworkRepository.Apply(ctx, id, u)
}

type fixture struct {
	artworks *countingRepo
	users    *memory.UserRepo
	cache    *mapCache
	events   *recorder

	artworkUC *ArtworkUsecase
	userUC    *UserUsecase
	listUC    *ListUsecase
}

func newFixture() *fixture {
	f := &fixture{
		artworks: &countingRepo{ArtworkRepository: memory.NewArtworkRepo()},
		users:    memory.NewUserRepo(),
		cache:    newMapCache(),
		events:   &recorder{},
	}
	f.artworkUC = NewArtworkUsecase(f.artworks, f.cache, f.events, time.Minute, discard)
	f.userUC = NewUserUsecase(f.users, f.events, discard)
	f.listUC = NewListUsecase(f.users, f.artworks, f.events, discard)
	return f
}
