package usecase

import (
	"context"
	"errors"

	"catalog-service/internal/domain"
	"catalog-service/internal/domain/repositories"
	"catalog-service/internal/messaging"

	"github.com/charmbracelet/log"
)

type UserUsecase struct {
	repo   repositories.UserRepository
	events messaging.Publisher
	logger *log.Logger
}

func NewUserUsecase(repo repositories.UserRepository, events messaging.Publisher, logger *log.Logger) *UserUsecase {
	return &UserUsecase{repo: repo, events: events, logger: logger}
}

// Register enforces the registration policy and stores the user with a
// bcrypt hash of the password. Nothing is written when any rule fails.
func (uc *UserUsecase) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if err := domain.ValidateRegistration(username, password); err != nil {
		return nil, err
	}

	_, err := uc.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil, domain.Conflict(domain.ReasonUsernameTaken)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	user := domain.NewUser(username, password)
	if err := user.HashPassword(); err != nil {
		uc.logger.Error("failed to hash password", "err", err)
		return nil, err
	}
	// The unique index still rejects a concurrent registration of the same name.
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", "username", username)
	notify(ctx, uc.events, uc.logger, messaging.SubjectUserRegistered, map[string]string{"username": username})
	return user, nil
}

func (uc *UserUsecase) Get(ctx context.Context, username string) (*domain.User, error) {
	return uc.repo.FindByUsername(ctx, username)
}

func (uc *UserUsecase) Delete(ctx context.Context, username string) (*domain.User, error) {
	user, err := uc.repo.Delete(ctx, username)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user deleted", "username", username)
	notify(ctx, uc.events, uc.logger, messaging.SubjectUserDeleted, map[string]string{"username": username})
	return user, nil
}
