package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authUC "github.com/devfolio/devfolio-api/internal/application/usecase/auth"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

type AuthHandler struct {
	registerUseCase *authUC.RegisterUseCase
	loginUseCase    *authUC.LoginUseCase
	confirmUseCase  *authUC.ConfirmEmailUseCase
	oauthUseCase    *authUC.OAuthLoginUseCase
	logger          logger.Logger
}

func NewAuthHandler(
	registerUC *authUC.RegisterUseCase,
	loginUC *authUC.LoginUseCase,
	confirmUC *authUC.ConfirmEmailUseCase,
	oauthUC *authUC.OAuthLoginUseCase,
	log logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase: registerUC,
		loginUseCase:    loginUC,
		confirmUseCase:  confirmUC,
		oauthUseCase:    oauthUC,
		logger:          log,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), authUC.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		c.Error(err)
		return
	}

	// The confirm token would normally travel by email; the API returns it
	// directly so a client without an outbound mailer can still complete the
	// flow.
	c.JSON(http.StatusCreated, gin.H{
		"user_id":       output.UserID,
		"confirm_token": output.ConfirmToken,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": output.AccessToken})
}

func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Error(apperror.NewInvalidInput("'token' query parameter is required", nil))
		return
	}

	if err := h.confirmUseCase.Execute(c.Request.Context(), authUC.ConfirmEmailInput{Token: token}); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email confirmed"})
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie("oauth_state", state, 300, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"auth_url": h.oauthUseCase.LoginURL(state)})
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	cookieState, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != cookieState {
		c.Error(apperror.NewUnauthorized("OAuth state mismatch", err))
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Error(apperror.NewInvalidInput("'code' query parameter is required", nil))
		return
	}

	output, err := h.oauthUseCase.HandleCallback(c.Request.Context(), authUC.OAuthCallbackInput{Code: code})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": output.AccessToken})
}
