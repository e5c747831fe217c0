package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/devfolio/devfolio-api/internal/application/usecase/portfolio"
	"github.com/devfolio/devfolio-api/internal/domain/view"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

type PublicHandler struct {
	getPublicUC *portfolioUC.GetPublicPortfolioUseCase
	metrics     *Metrics
	logger      logger.Logger
}

func NewPublicHandler(getPublicUC *portfolioUC.GetPublicPortfolioUseCase, metrics *Metrics, log logger.Logger) *PublicHandler {
	return &PublicHandler{
		getPublicUC: getPublicUC,
		metrics:     metrics,
		logger:      log,
	}
}

func (h *PublicHandler) GetPortfolio(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.Error(apperror.NewInvalidInput("slug is required", nil))
		return
	}

	output, err := h.getPublicUC.Execute(c.Request.Context(), portfolioUC.GetPublicPortfolioInput{
		Slug: slug,
		Meta: view.Metadata{
			ViewerIP:  c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Referrer:  c.Request.Referer(),
		},
	})
	if err != nil {
		c.Error(err)
		return
	}

	if h.metrics != nil {
		h.metrics.ViewsRecorded.Inc()
	}
	c.JSON(http.StatusOK, ToAggregateDTO(output.Aggregate))
}

func (h *PublicHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
