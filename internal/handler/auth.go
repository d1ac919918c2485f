package handler

import (
	"net/http"

	"github.com/RomanSiu/contacts-api/internal/constants"
	"github.com/RomanSiu/contacts-api/internal/dto"
	apperrors "github.com/RomanSiu/contacts-api/internal/errors"
	"github.com/RomanSiu/contacts-api/internal/service"
	"github.com/RomanSiu/contacts-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup handles user registration
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().Warn("Invalid signup request",
			zap.Error(err))
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		logger.GetLogger().Warn("Signup failed",
			zap.String("email", req.Email),
			zap.Error(err))
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Signup failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{
		User:   *user,
		Detail: "User successfully created. Check your email for confirmation.",
	})
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().Warn("Invalid login request",
			zap.Error(err))
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Authentication failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, pair)
}

// RefreshToken rotates the access/refresh token pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().Warn("Invalid refresh token request",
			zap.Error(err))
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Token refresh failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, pair)
}

// ConfirmEmail marks the email named by the token as confirmed. Confirming
// an already-confirmed email succeeds without side effects.
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Missing confirmation token", nil))
		return
	}

	if err := h.authService.ConfirmEmail(c.Request.Context(), token); err != nil {
		logger.GetLogger().Warn("Email confirmation failed",
			zap.Error(err))
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Email confirmation failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Email confirmed"))
}

// RequestConfirmEmail re-sends the confirmation mail. The response never
// reveals whether the email is registered.
func (h *AuthHandler) RequestConfirmEmail(c *gin.Context) {
	var req dto.RequestConfirmEmail
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	if err := h.authService.RequestConfirmEmail(c.Request.Context(), req.Email); err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Request failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Check your email for confirmation"))
}
