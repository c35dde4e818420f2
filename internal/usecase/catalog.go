package usecase

import (
	"context"

	"catalog-service/internal/domain"
	"catalog-service/internal/domain/repositories"
)

type CatalogUsecase struct {
	repo repositories.CatalogRepository
}

func NewCatalogUsecase(repo repositories.CatalogRepository) *CatalogUsecase {
	return &CatalogUsecase{repo: repo}
}

func (uc *CatalogUsecase) Tag(ctx context.Context, name string) (*domain.Tag, error) {
	return uc.repo.FindTag(ctx, name)
}

func (uc *CatalogUsecase) Creator(ctx context.Context, id int64) (*domain.Creator, error) {
	return uc.repo.FindCreator(ctx, id)
}
