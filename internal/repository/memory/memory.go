// Package memory is an in-process document store with the same contracts as
// the MongoDB repositories. It backs STORE=memory and the tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"catalog-service/internal/domain"
	"catalog-service/internal/domain/repositories"
)

type ArtworkRepo struct {
	mu       sync.RWMutex
	seq      int64
	artworks map[int64]*domain.Artwork
}

func NewArtworkRepo() *ArtworkRepo {
	return &ArtworkRepo{artworks: make(map[int64]*domain.Artwork)}
}

var _ repositories.ArtworkRepository = (*ArtworkRepo)(nil)

func (r *ArtworkRepo) NextID(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

func (r *ArtworkRepo) Create(ctx context.Context, artwork *domain.Artwork) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.artworks[artwork.ID]; ok {
		return domain.Conflict(fmt.Sprintf("Artwork id %d is already in use.", artwork.ID))
	}
	r.artworks[artwork.ID] = artwork.Clone()
	return nil
}

func (r *ArtworkRepo) FindByID(ctx context.Context, id int64) (*domain.Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.artworks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a.Clone(), nil
}

func (r *ArtworkRepo) Apply(ctx context.Context, id int64, update domain.Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.artworks[id]
	if !ok {
		return domain.ErrNotFound
	}
	update.Apply(a)
	return nil
}

func (r *ArtworkRepo) Delete(ctx context.Context, id int64) (*domain.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.artworks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.artworks, id)
	return a, nil
}

func (r *ArtworkRepo) Search(ctx context.Context, query domain.SearchQuery) ([]int64, error) {
	r.mu.RLock()
	matched := make([]int64, 0)
	for id, a := range r.artworks {
		if query.Matches(a) {
			matched = append(matched, id)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i] < matched[j] })
	if query.Offset >= len(matched) {
		return make([]int64, 0), nil
	}
	matched = matched[query.Offset:]
	if len(matched) > query.Limit {
		matched = matched[:query.Limit]
	}
	return matched, nil
}

type UserRepo struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*domain.User)}
}

var _ repositories.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return domain.Conflict(domain.ReasonUsernameTaken)
	}
	r.users[user.Username] = user.Clone()
	return nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepo) Delete(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.users, username)
	return u, nil
}

func (r *UserRepo) ListSummaries(ctx context.Context, username string) ([]domain.ListSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u.Summaries(), nil
}

func (r *UserRepo) CreateList(ctx context.Context, username, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return domain.ErrNotFound
	}
	if _, exists := u.List(name); exists {
		return domain.Conflict(fmt.Sprintf("List %q already exists.", name))
	}
	u.Lists = append(u.Lists, domain.NewList(name))
	return nil
}

func (r *UserRepo) AddToList(ctx context.Context, username, name string, artworkID int64) error {
	return r.withList(username, name, func(l *domain.List) {
		l.Artworks = append(l.Artworks, artworkID)
	})
}

func (r *UserRepo) RemoveFromList(ctx context.Context, username, name string, artworkID int64) error {
	return r.withList(username, name, func(l *domain.List) {
		l.Remove(artworkID)
	})
}

func (r *UserRepo) withList(username, name string, fn func(l *domain.List)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return domain.ErrNotFound
	}
	l, ok := u.List(name)
	if !ok {
		return domain.ErrNotFound
	}
	fn(l)
	return nil
}

func (r *UserRepo) DeleteList(ctx context.Context, username, name string) (*domain.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for i, l := range u.Lists {
		if l.Name == name {
			u.Lists = append(u.Lists[:i], u.Lists[i+1:]...)
			return &l, nil
		}
	}
	return nil, domain.ErrNotFound
}

// CatalogRepo serves a fixed set of tags and creators.
type CatalogRepo struct {
	tags     map[string]domain.Tag
	creators map[int64]domain.Creator
}

func NewCatalogRepo(tags []domain.Tag, creators []domain.Creator) *CatalogRepo {
	r := &CatalogRepo{
		tags:     make(map[string]domain.Tag, len(tags)),
		creators: make(map[int64]domain.Creator, len(creators)),
	}
	for _, t := range tags {
		r.tags[t.Name] = t
	}
	for _, c := range creators {
		r.creators[c.ID] = c
	}
	return r
}

var _ repositories.CatalogRepository = (*CatalogRepo)(nil)

func (r *CatalogRepo) FindTag(ctx context.Context, name string) (*domain.Tag, error) {
	t, ok := r.tags[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.Tag{ID: t.ID}, nil
}

func (r *CatalogRepo) FindCreator(ctx context.Context, id int64) (*domain.Creator, error) {
	c, ok := r.creators[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.Creator{ID: c.ID}, nil
}
