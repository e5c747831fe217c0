package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devfolio/devfolio-api/internal/domain/view"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

type postgresViewRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresViewRepo(db *pgxpool.Pool, logger logger.Logger) view.Repository {
	return &postgresViewRepo{db: db, logger: logger}
}

func (r *postgresViewRepo) Insert(ctx context.Context, v *view.PortfolioView) error {
	query := `
		INSERT INTO portfolio_views (id, portfolio_id, viewer_ip, user_agent, referrer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		v.ID, v.PortfolioID, v.ViewerIP, v.UserAgent, v.Referrer, v.CreatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to insert portfolio view", err)
	}
	return nil
}
