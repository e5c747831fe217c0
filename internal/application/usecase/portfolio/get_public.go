package portfolio

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/domain/portfolio"
	"github.com/devfolio/devfolio-api/internal/domain/view"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

// ViewDeduper suppresses repeat view events from the same visitor within a
// short window. It is advisory: any failure is treated as "not seen".
type ViewDeduper interface {
	Seen(ctx context.Context, portfolioID uuid.UUID, viewerIP string) (bool, error)
}

type GetPublicPortfolioUseCase struct {
	repo     portfolio.Repository
	recorder view.Recorder
	deduper  ViewDeduper
	logger   logger.Logger
}

func NewGetPublicPortfolioUseCase(repo portfolio.Repository, recorder view.Recorder, deduper ViewDeduper, log logger.Logger) *GetPublicPortfolioUseCase {
	return &GetPublicPortfolioUseCase{
		repo:     repo,
		recorder: recorder,
		deduper:  deduper,
		logger:   log,
	}
}

type GetPublicPortfolioInput struct {
	Slug string
	Meta view.Metadata
}

type GetPublicPortfolioOutput struct {
	Aggregate *portfolio.Aggregate
}

// Execute resolves a slug to the full public aggregate. A private portfolio
// is indistinguishable from a missing one. View recording happens after the
// read succeeds and is best-effort: failures are logged, never surfaced, and
// never block the response.
func (uc *GetPublicPortfolioUseCase) Execute(ctx context.Context, input GetPublicPortfolioInput) (*GetPublicPortfolioOutput, error) {
	agg, err := uc.repo.FindPublicBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	go uc.recordView(context.Background(), agg.Portfolio.ID, input.Meta)

	return &GetPublicPortfolioOutput{Aggregate: agg}, nil
}

func (uc *GetPublicPortfolioUseCase) recordView(ctx context.Context, portfolioID uuid.UUID, meta view.Metadata) {
	if uc.recorder == nil {
		return
	}

	if uc.deduper != nil && meta.ViewerIP != "" {
		seen, err := uc.deduper.Seen(ctx, portfolioID, meta.ViewerIP)
		if err != nil {
			uc.logger.Warn("View dedup check failed, recording anyway",
				zap.String("portfolio_id", portfolioID.String()), zap.Error(err))
		} else if seen {
			return
		}
	}

	if err := uc.recorder.RecordView(ctx, portfolioID, meta); err != nil {
		uc.logger.Warn("Failed to record portfolio view",
			zap.String("portfolio_id", portfolioID.String()), zap.Error(err))
	}
}
