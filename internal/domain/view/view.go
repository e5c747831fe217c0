package view

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PortfolioView is an append-only audit event, never mutated or deleted.
type PortfolioView struct {
	ID          uuid.UUID `json:"id"`
	PortfolioID uuid.UUID `json:"portfolio_id"`
	ViewerIP    string    `json:"viewer_ip"`
	UserAgent   string    `json:"user_agent"`
	Referrer    string    `json:"referrer"`
	CreatedAt   time.Time `json:"created_at"`
}

type Metadata struct {
	ViewerIP  string
	UserAgent string
	Referrer  string
}

type Repository interface {
	Insert(ctx context.Context, v *PortfolioView) error
}

// Recorder accepts view events on the read path. Implementations are
// best-effort: callers log failures and never propagate them.
type Recorder interface {
	RecordView(ctx context.Context, portfolioID uuid.UUID, meta Metadata) error
}
