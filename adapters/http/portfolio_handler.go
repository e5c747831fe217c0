package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portfolioUC "github.com/devfolio/devfolio-api/internal/application/usecase/portfolio"
	"github.com/devfolio/devfolio-api/internal/domain/portfolio"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

type PortfolioHandler struct {
	createCompleteUC *portfolioUC.CreateCompletePortfolioUseCase
	listOwnUC        *portfolioUC.ListOwnPortfoliosUseCase
	updateUC         *portfolioUC.UpdatePortfolioUseCase
	deleteUC         *portfolioUC.DeletePortfolioUseCase
	siteOrigin       string
	logger           logger.Logger
}

func NewPortfolioHandler(
	createCompleteUC *portfolioUC.CreateCompletePortfolioUseCase,
	listOwnUC *portfolioUC.ListOwnPortfoliosUseCase,
	updateUC *portfolioUC.UpdatePortfolioUseCase,
	deleteUC *portfolioUC.DeletePortfolioUseCase,
	siteOrigin string,
	log logger.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		createCompleteUC: createCompleteUC,
		listOwnUC:        listOwnUC,
		updateUC:         updateUC,
		deleteUC:         deleteUC,
		siteOrigin:       siteOrigin,
		logger:           log,
	}
}

// CreatePortfolio accepts the full multi-section submission and fans it out.
// A partial failure still answers with whatever was persisted: the client
// needs the slug of the committed portfolio row to inspect or retry.
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := req.ToInput()
	input.OwnerID = ownerID

	output, err := h.createCompleteUC.Execute(c.Request.Context(), input)
	if err != nil {
		var stepErr *portfolio.StepError
		if errors.As(err, &stepErr) && output != nil && output.Portfolio != nil {
			c.JSON(apperror.ToHTTPStatus(stepErr.Err), gin.H{
				"error":       apperror.Display(stepErr),
				"failed_step": string(stepErr.Step),
				"portfolio":   ToPortfolioDTO(output.Portfolio),
				"public_url":  h.publicURL(output.Portfolio.Slug),
			})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"portfolio":  ToPortfolioDTO(output.Portfolio),
		"public_url": h.publicURL(output.Portfolio.Slug),
	})
}

func (h *PortfolioHandler) ListPortfolios(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	aggregates, err := h.listOwnUC.Execute(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]AggregateDTO, len(aggregates))
	for i, agg := range aggregates {
		dtos[i] = ToAggregateDTO(agg)
	}
	c.JSON(http.StatusOK, gin.H{"portfolios": dtos})
}

func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid portfolio ID", err))
		return
	}
	var req UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := portfolioUC.UpdatePortfolioInput{
		OwnerID:           ownerID,
		PortfolioID:       portfolioID,
		Name:              req.Name,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
		Location:          req.Location,
		IsPublic:          req.IsPublic,
	}
	if err := h.updateUC.Execute(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio updated"})
}

func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid portfolio ID", err))
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), portfolioID, ownerID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio deleted"})
}

func (h *PortfolioHandler) publicURL(slug string) string {
	return fmt.Sprintf("%s/p/%s", h.siteOrigin, slug)
}
