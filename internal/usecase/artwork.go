package usecase

import (
	"context"
	"time"

	"catalog-service/internal/domain"
	"catalog-service/internal/domain/repositories"
	"catalog-service/internal/messaging"

	"github.com/charmbracelet/log"
)

type ArtworkUsecase struct {
	repo     repositories.ArtworkRepository
	cache    repositories.ArtworkCache
	events   messaging.Publisher
	cacheTTL time.Duration
	logger   *log.Logger
}

func NewArtworkUsecase(
	repo repositories.ArtworkRepository,
	cache repositories.ArtworkCache,
	events messaging.Publisher,
	cacheTTL time.Duration,
	logger *log.Logger,
) *ArtworkUsecase {
	return &ArtworkUsecase{
		repo:     repo,
		cache:    cache,
		events:   events,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

type CreateArtworkCommand struct {
	Title   string
	Creator string
	Tags    []string
}

func (uc *ArtworkUsecase) Get(ctx context.Context, id int64) (*domain.Artwork, error) {
	if cached, err := uc.cache.Get(ctx, id); err != nil {
		uc.logger.Warn("artwork cache read failed", "id", id, "err", err)
	} else if cached != nil {
		return cached, nil
	}

	// The version must be read before the store so a concurrent mutation
	// invalidates this fill.
	version, verr := uc.cache.Version(ctx, id)
	artwork, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if verr != nil {
		uc.logger.Warn("artwork cache version read failed", "id", id, "err", verr)
		return artwork, nil
	}
	if err := uc.cache.Fill(ctx, artwork, version, uc.cacheTTL); err != nil {
		uc.logger.Warn("artwork cache write failed", "id", id, "err", err)
	}
	return artwork, nil
}

func (uc *ArtworkUsecase) Search(ctx context.Context, query domain.SearchQuery) ([]int64, error) {
	return uc.repo.Search(ctx, query)
}

// Create allocates a fresh id and inserts the artwork. A uniqueness violation
// is returned as a conflict and never retried with another id.
func (uc *ArtworkUsecase) Create(ctx context.Context, cmd CreateArtworkCommand) (*domain.Artwork, error) {
	if cmd.Title == "" || cmd.Creator == "" {
		return nil, domain.Invalid("Title and creator are required.")
	}

	id, err := uc.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}
	artwork := domain.NewArtwork(id, cmd.Title, cmd.Creator, cmd.Tags)
	if err := uc.repo.Create(ctx, artwork); err != nil {
		return nil, err
	}

	uc.logger.Info("artwork created", "id", artwork.ID, "title", artwork.Title)
	notify(ctx, uc.events, uc.logger, messaging.SubjectArtworkCreated, artwork)
	return artwork, nil
}

// Update validates the operation against the artwork schema, applies it with
// a single store write and returns the record as stored afterwards.
func (uc *ArtworkUsecase) Update(ctx context.Context, id int64, key, opType string, value *string) (*domain.Artwork, error) {
	update, err := domain.NewArtworkUpdate(key, opType, value)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Apply(ctx, id, update); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)

	artwork, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("artwork updated", "id", id, "key", update.Key, "op", update.Op)
	notify(ctx, uc.events, uc.logger, messaging.SubjectArtworkUpdated, artwork)
	return artwork, nil
}

func (uc *ArtworkUsecase) Delete(ctx context.Context, id int64) (*domain.Artwork, error) {
	artwork, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)

	uc.logger.Info("artwork deleted", "id", id)
	notify(ctx, uc.events, uc.logger, messaging.SubjectArtworkDeleted, artwork)
	return artwork, nil
}

func (uc *ArtworkUsecase) invalidate(ctx context.Context, id int64) {
	if err := uc.cache.Invalidate(ctx, id); err != nil {
		uc.logger.Warn("artwork cache invalidation failed", "id", id, "err", err)
	}
}
