package usecase

import (
	"context"
	"fmt"

	"catalog-service/internal/domain"
	"catalog-service/internal/domain/repositories"
	"catalog-service/internal/messaging"

	"github.com/charmbracelet/log"
)

// ListAction selects how PUT modifies a list.
type ListAction string

const (
	ListAdd    ListAction = "add"
	ListRemove ListAction = "remove"
)

func ParseListAction(s string) (ListAction, error) {
	switch ListAction(s) {
	case ListAdd, ListRemove:
		return ListAction(s), nil
	}
	return "", domain.Invalid(fmt.Sprintf("Unknown list action %q.", s))
}

type listEvent struct {
	Username string       `json:"username"`
	List     *domain.List `json:"list"`
}

type ListUsecase struct {
	users    repositories.UserRepository
	artworks repositories.ArtworkRepository
	events   messaging.Publisher
	logger   *log.Logger
}

func NewListUsecase(
	users repositories.UserRepository,
	artworks repositories.ArtworkRepository,
	events messaging.Publisher,
	logger *log.Logger,
) *ListUsecase {
	return &ListUsecase{users: users, artworks: artworks, events: events, logger: logger}
}

func (uc *ListUsecase) Summaries(ctx context.Context, username string) ([]domain.ListSummary, error) {
	return uc.users.ListSummaries(ctx, username)
}

func (uc *ListUsecase) Get(ctx context.Context, username, name string) (*domain.List, error) {
	user, err := uc.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	list, ok := user.List(name)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return list, nil
}

func (uc *ListUsecase) Create(ctx context.Context, username, name string) (*domain.List, error) {
	if name == "" {
		return nil, domain.Invalid("List name is required.")
	}
	if err := uc.users.CreateList(ctx, username, name); err != nil {
		return nil, err
	}
	list := domain.NewList(name)
	notify(ctx, uc.events, uc.logger, messaging.SubjectListCreated, listEvent{Username: username, List: &list})
	return &list, nil
}

// Modify adds or removes an artwork reference. Added artworks must exist;
// removal drops every occurrence and does not require the artwork to exist.
func (uc *ListUsecase) Modify(ctx context.Context, username, name string, action ListAction, artworkID int64) (*domain.List, error) {
	var err error
	switch action {
	case ListAdd:
		if _, err = uc.artworks.FindByID(ctx, artworkID); err != nil {
			return nil, err
		}
		err = uc.users.AddToList(ctx, username, name, artworkID)
	case ListRemove:
		err = uc.users.RemoveFromList(ctx, username, name, artworkID)
	default:
		return nil, domain.Invalid(fmt.Sprintf("Unknown list action %q.", action))
	}
	if err != nil {
		return nil, err
	}

	list, err := uc.Get(ctx, username, name)
	if err != nil {
		return nil, err
	}
	notify(ctx, uc.events, uc.logger, messaging.SubjectListUpdated, listEvent{Username: username, List: list})
	return list, nil
}

func (uc *ListUsecase) Delete(ctx context.Context, username, name string) (*domain.List, error) {
	list, err := uc.users.DeleteList(ctx, username, name)
	if err != nil {
		return nil, err
	}
	notify(ctx, uc.events, uc.logger, messaging.SubjectListDeleted, listEvent{Username: username, List: list})
	return list, nil
}
