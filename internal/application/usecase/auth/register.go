package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/domain/user"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/auth"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

type RegisterUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type RegisterOutput struct {
	UserID uuid.UUID
	// ConfirmToken is embedded in the confirmation link mailed to the user.
	ConfirmToken string
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.NewInvalidInput("invalid email address", err)
	}
	if len(input.Password) < 8 {
		return nil, apperror.NewInvalidInput("password must be at least 8 characters", nil)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		newUser.Name = &name
	}

	if err := uc.userRepo.Save(ctx, newUser); err != nil {
		return nil, err
	}

	confirmToken, err := uc.jwtSvc.GenerateConfirmToken(newUser.ID)
	if err != nil {
		uc.logger.Error("Failed to generate confirm token", err, zap.String("user_id", newUser.ID.String()))
		return nil, apperror.NewInternal("failed to generate confirmation token", err)
	}

	return &RegisterOutput{UserID: newUser.ID, ConfirmToken: confirmToken}, nil
}
