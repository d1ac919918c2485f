package handler

import (
	"net/http"
	"strconv"

	"github.com/RomanSiu/contacts-api/internal/constants"
	"github.com/RomanSiu/contacts-api/internal/dto"
	apperrors "github.com/RomanSiu/contacts-api/internal/errors"
	"github.com/RomanSiu/contacts-api/internal/middleware"
	"github.com/RomanSiu/contacts-api/internal/service"
	"github.com/RomanSiu/contacts-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// GetAll lists the current user's contacts with pagination and optional
// exact-match filters.
func (h *ContactHandler) GetAll(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	pagination := constants.ParsePaginationParams(c)

	var filter dto.ContactFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid query parameters", err.Error()))
		return
	}

	contacts, total, err := h.contactService.GetAll(c.Request.Context(), user.ID, pagination.Skip, pagination.Limit, filter)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Failed to list contacts", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(total, contacts))
}

func (h *ContactHandler) GetByID(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	contactID, ok := parseContactID(c)
	if !ok {
		return
	}

	contact, err := h.contactService.GetByID(c.Request.Context(), user.ID, contactID)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Contact not found", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().Warn("Invalid contact payload",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Failed to create contact", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	contactID, ok := parseContactID(c)
	if !ok {
		return
	}

	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), user.ID, contactID, &req)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Failed to update contact", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	contactID, ok := parseContactID(c)
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), user.ID, contactID); err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Failed to delete contact", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Contact deleted"))
}

// UpcomingBirthdays lists the current user's contacts with a birthday in
// the next seven days.
func (h *ContactHandler) UpcomingBirthdays(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	contacts, err := h.contactService.UpcomingBirthdays(c.Request.Context(), user.ID)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Failed to list birthdays", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(int64(len(contacts)), contacts))
}

func parseContactID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid contact id", c.Param("id")))
		return 0, false
	}
	return uint(id), true
}
