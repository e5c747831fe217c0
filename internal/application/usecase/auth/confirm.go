package auth

import (
	"context"
	"time"

	"github.com/devfolio/devfolio-api/internal/domain/user"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/auth"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

type ConfirmEmailUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewConfirmEmailUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *ConfirmEmailUseCase {
	return &ConfirmEmailUseCase{userRepo: repo, jwtSvc: jwtSvc, logger: log}
}

type ConfirmEmailInput struct {
	Token string
}

func (uc *ConfirmEmailUseCase) Execute(ctx context.Context, input ConfirmEmailInput) error {
	userID, err := uc.jwtSvc.ValidateConfirmToken(input.Token)
	if err != nil {
		return apperror.NewInvalidInput("invalid or expired confirmation token", err)
	}

	if err := uc.userRepo.ConfirmEmail(ctx, userID, time.Now().UTC()); err != nil {
		return err
	}
	return nil
}
