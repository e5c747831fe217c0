package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/domain/user"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/auth"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

type OAuthLoginUseCase struct {
	userRepo user.Repository
	provider *auth.GoogleOAuthProvider
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewOAuthLoginUseCase(repo user.Repository, provider *auth.GoogleOAuthProvider, jwtSvc *auth.JWTService, log logger.Logger) *OAuthLoginUseCase {
	return &OAuthLoginUseCase{
		userRepo: repo,
		provider: provider,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

// LoginURL returns the external redirect target for the OAuth flow.
func (uc *OAuthLoginUseCase) LoginURL(state string) string {
	return uc.provider.GetLoginURL(state)
}

type OAuthCallbackInput struct {
	Code string
}

type OAuthCallbackOutput struct {
	AccessToken string
}

// HandleCallback exchanges the authorization code, then finds or creates the
// matching account. OAuth identities arrive with a provider-verified email,
// so new accounts are confirmed immediately.
func (uc *OAuthLoginUseCase) HandleCallback(ctx context.Context, input OAuthCallbackInput) (*OAuthCallbackOutput, error) {
	if strings.TrimSpace(input.Code) == "" {
		return nil, apperror.NewInvalidInput("missing authorization code", nil)
	}

	info, err := uc.provider.ExchangeCode(ctx, input.Code)
	if err != nil {
		return nil, apperror.NewUnauthorized("OAuth code exchange failed", err)
	}

	email := strings.ToLower(info.Email)
	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}

		now := time.Now().UTC()
		u = &user.User{
			ID:               uuid.New(),
			Email:            email,
			EmailConfirmedAt: &now,
			CreatedAt:        now,
		}
		if name := strings.TrimSpace(info.Name); name != "" {
			u.Name = &name
		}
		if err := uc.userRepo.Save(ctx, u); err != nil {
			return nil, err
		}
		uc.logger.Info("Created account from OAuth sign-in", zap.String("user_id", u.ID.String()))
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID, u.EmailConfirmed())
	if err != nil {
		return nil, apperror.NewInternal("failed to generate token", err)
	}
	return &OAuthCallbackOutput{AccessToken: token}, nil
}
