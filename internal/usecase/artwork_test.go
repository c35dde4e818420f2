package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"catalog-service/internal/domain"
	"catalog-service/internal/domain/repositories"
	"catalog-service/internal/messaging"
	"catalog-service/internal/repository"
	"catalog-service/internal/repository/memory"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func createArtwork(t *testing.T, f *fixture) *domain.Artwork {
	t.Helper()
	a, err := f.artworkUC.Create(context.Background(), CreateArtworkCommand{
		Title:   "Starry Night",
		Creator: "Van Gogh",
		Tags:    []string{"oil", "night"},
	})
	require.NoError(t, err)
	return a
}

func TestArtworkCreate(t *testing.T) {
	f := newFixture()
	a := createArtwork(t, f)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, []string{"oil", "night"}, a.Tags)
	assert.NotNil(t, a.Links)
	assert.Empty(t, a.Links)
	assert.Equal(t, []string{messaging.SubjectArtworkCreated}, f.events.subjects())

	_, err := f.artworkUC.Create(context.Background(), CreateArtworkCommand{Title: "untitled"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestArtworkIDsUniqueUnderConcurrencyAndDeletion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	const n = 100
	var mu sync.Mutex
	seen := make(map[int64]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := f.artworkUC.Create(ctx, CreateArtworkCommand{Title: "t", Creator: "c"})
			if !assert.NoError(t, err) {
				return
			}
			if i%2 == 0 {
				_, err := f.artworkUC.Delete(ctx, a.ID)
				assert.NoError(t, err)
			}
			mu.Lock()
			assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
			seen[a.ID] = true
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	assert.Len(t, seen, n)

	// Ids freed by deletion are never handed out again.
	a, err := f.artworkUC.Create(ctx, CreateArtworkCommand{Title: "t", Creator: "c"})
	require.NoError(t, err)
	assert.False(t, seen[a.ID])
}

func TestArtworkUpdateSetTitle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	before := createArtwork(t, f)

	after, err := f.artworkUC.Update(ctx, before.ID, "title", "set", strPtr("X"))
	require.NoError(t, err)

	expected := before.Clone()
	expected.Title = "X"
	assert.Equal(t, expected, after)
}

func TestArtworkUpdatePushPopLinks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := createArtwork(t, f)

	after, err := f.artworkUC.Update(ctx, a.ID, "links", "push", strPtr("http://a"))
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a"}, after.Links)

	after, err = f.artworkUC.Update(ctx, a.ID, "links", "pop", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, after.Links)
}

func TestArtworkUpdateRejectsUnknownType(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := createArtwork(t, f)

	_, err := f.artworkUC.Update(ctx, a.ID, "title", "rename", strPtr("X"))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, f.artworks.applies)

	stored, err := f.artworks.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, stored)
}

func TestArtworkUpdateSchemaRejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := createArtwork(t, f)

	for _, tc := range []struct{ key, op string }{
		{"title", "push"},
		{"creator", "pop"},
		{"id", "set"},
		{"nope", "clear"},
	} {
		_, err := f.artworkUC.Update(ctx, a.ID, tc.key, tc.op, strPtr("v"))
		assert.ErrorIs(t, err, domain.ErrValidation, "%s %s", tc.op, tc.key)
	}
	assert.Equal(t, 0, f.artworks.applies)
}

func TestArtworkUpdateMissingIsNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.artworkUC.Update(ctx, 99, "title", "set", strPtr("X"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, f.artworks.applies)

	_, err = f.artworkUC.Get(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArtworkGetUsesCacheAndUpdateInvalidates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := createArtwork(t, f)

	got, err := f.artworkUC.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Title, got.Title)
	cached, _ := f.cache.Get(ctx, a.ID)
	require.NotNil(t, cached)

	_, err = f.artworkUC.Update(ctx, a.ID, "title", "set", strPtr("Renamed"))
	require.NoError(t, err)
	cached, _ = f.cache.Get(ctx, a.ID)
	assert.Nil(t, cached)

	got, err = f.artworkUC.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestArtworkDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := createArtwork(t, f)
	_, err := f.artworkUC.Get(ctx, a.ID)
	require.NoError(t, err)

	deleted, err := f.artworkUC.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, deleted.ID)

	_, err = f.artworkUC.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.artworkUC.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, f.events.subjects(), messaging.SubjectArtworkDeleted)
}

// pausingRepo holds the first armed FindByID after it has read the store,
// until release is closed.
type pausingRepo struct {
	repositories.ArtworkRepository
	armed   atomic.Bool
	loaded  chan struct{}
	release chan struct{}
}

func (r *pausingRepo) FindByID(ctx context.Context, id int64) (*domain.Artwork, error) {
	a, err := r.ArtworkRepository.FindByID(ctx, id)
	if r.armed.CompareAndSwap(true, false) {
		close(r.loaded)
		<-r.release
	}
	return a, err
}

func redisCache(t *testing.T) repositories.ArtworkCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return repository.NewRedisRepo(client)
}

func TestArtworkGetRacingMutationIsNotCached(t *testing.T) {
	caches := map[string]func(t *testing.T) repositories.ArtworkCache{
		"map":   func(*testing.T) repositories.ArtworkCache { return newMapCache() },
		"redis": redisCache,
	}
	mutations := map[string]func(ctx context.Context, uc *ArtworkUsecase, id int64) error{
		"update": func(ctx context.Context, uc *ArtworkUsecase, id int64) error {
			_, err := uc.Update(ctx, id, "title", "set", strPtr("New"))
			return err
		},
		"delete": func(ctx context.Context, uc *ArtworkUsecase, id int64) error {
			_, err := uc.Delete(ctx, id)
			return err
		},
	}

	for cacheName, newCache := range caches {
		for mutationName, mutate := range mutations {
			t.Run(cacheName+"/"+mutationName, func(t *testing.T) {
				ctx := context.Background()
				repo := &pausingRepo{
					ArtworkRepository: memory.NewArtworkRepo(),
					loaded:            make(chan struct{}),
					release:           make(chan struct{}),
				}
				uc := NewArtworkUsecase(repo, newCache(t), &recorder{}, time.Minute, discard)

				a, err := uc.Create(ctx, CreateArtworkCommand{Title: "Old", Creator: "c"})
				require.NoError(t, err)

				repo.armed.Store(true)
				done := make(chan *domain.Artwork)
				go func() {
					got, err := uc.Get(ctx, a.ID)
					assert.NoError(t, err)
					done <- got
				}()

				<-repo.loaded
				require.NoError(t, mutate(ctx, uc, a.ID))
				close(repo.release)
				inFlight := <-done
				require.NotNil(t, inFlight)
				assert.Equal(t, "Old", inFlight.Title)

				got, err := uc.Get(ctx, a.ID)
				if mutationName == "delete" {
					assert.ErrorIs(t, err, domain.ErrNotFound)
					assert.Nil(t, got)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, "New", got.Title)
			})
		}
	}
}
