package portfolio

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/devfolio/devfolio-api/internal/domain/portfolio"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

// ListOwnPortfoliosUseCase returns every aggregate owned by a user.
type ListOwnPortfoliosUseCase struct {
	repo   portfolio.Repository
	logger logger.Logger
}

func NewListOwnPortfoliosUseCase(repo portfolio.Repository, log logger.Logger) *ListOwnPortfoliosUseCase {
	return &ListOwnPortfoliosUseCase{repo: repo, logger: log}
}

func (uc *ListOwnPortfoliosUseCase) Execute(ctx context.Context, ownerID uuid.UUID) ([]*portfolio.Aggregate, error) {
	return uc.repo.ListByOwner(ctx, ownerID)
}

// UpdatePortfolioUseCase patches root-level fields of an owned portfolio.
type UpdatePortfolioUseCase struct {
	repo   portfolio.Repository
	logger logger.Logger
}

func NewUpdatePortfolioUseCase(repo portfolio.Repository, log logger.Logger) *UpdatePortfolioUseCase {
	return &UpdatePortfolioUseCase{repo: repo, logger: log}
}

type UpdatePortfolioInput struct {
	OwnerID           uuid.UUID
	PortfolioID       uuid.UUID
	Name              string
	Bio               string
	ProfilePictureURL *string
	Location          *string
	IsPublic          bool
}

func (uc *UpdatePortfolioUseCase) Execute(ctx context.Context, input UpdatePortfolioInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperror.NewInvalidInput("portfolio name is required", nil)
	}

	p := &portfolio.Portfolio{
		ID:                input.PortfolioID,
		UserID:            input.OwnerID,
		Name:              strings.TrimSpace(input.Name),
		Bio:               sanitize.Sanitize(input.Bio),
		ProfilePictureURL: input.ProfilePictureURL,
		Location:          input.Location,
		IsPublic:          input.IsPublic,
	}
	return uc.repo.Update(ctx, p)
}

// DeletePortfolioUseCase removes an owned portfolio; the store cascades the
// delete to all child rows.
type DeletePortfolioUseCase struct {
	repo   portfolio.Repository
	logger logger.Logger
}

func NewDeletePortfolioUseCase(repo portfolio.Repository, log logger.Logger) *DeletePortfolioUseCase {
	return &DeletePortfolioUseCase{repo: repo, logger: log}
}

func (uc *DeletePortfolioUseCase) Execute(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	return uc.repo.Delete(ctx, id, ownerID)
}
