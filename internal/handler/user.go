package handler

import (
	"net/http"

	"github.com/RomanSiu/contacts-api/internal/constants"
	apperrors "github.com/RomanSiu/contacts-api/internal/errors"
	"github.com/RomanSiu/contacts-api/internal/middleware"
	"github.com/RomanSiu/contacts-api/internal/service"
	"github.com/RomanSiu/contacts-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxAvatarSize caps avatar uploads at 5 MiB.
const maxAvatarSize = 5 << 20

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Me returns the authenticated user's snapshot as resolved by the auth
// middleware, cache staleness bound included.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateAvatar accepts a multipart "file" field, stores it and returns the
// refreshed profile.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Missing avatar file", err.Error()))
		return
	}

	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Avatar file too large", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.GetLogger().Error("Failed to open uploaded avatar",
			zap.String("email", user.Email),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Unreadable avatar file", err.Error()))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	updated, err := h.userService.UpdateAvatar(
		c.Request.Context(),
		user.Email,
		fileHeader.Filename,
		contentType,
		file,
		fileHeader.Size,
	)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Avatar update failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, updated)
}
