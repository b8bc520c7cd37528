package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/dto"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/services"
	"github.com/taskboard/taskboard-api/internal/utils"
)

// ParticipantHandler coordinates participant-related HTTP handlers.
type ParticipantHandler struct {
	participantService *services.ParticipantService
}

// NewParticipantHandler creates a new ParticipantHandler.
func NewParticipantHandler(participantService *services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: participantService,
	}
}

// ListParticipants returns a page of participants visible to the caller.
// Filters: status, interest, search; admins may narrow to one owner.
func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)
	search := c.Query("search")
	if search == "" {
		search = c.Query("q")
	}
	input := services.ListParticipantsInput{
		Interest: c.Query("interest"),
		Search:   search,
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.ParticipantStatus(statusStr)
		if !models.ValidParticipantStatus(status) {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}
	if ownerStr := c.Query("owner"); ownerStr != "" {
		ownerID, err := strconv.ParseUint(ownerStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid owner filter")
			return
		}
		input.OwnerID = &ownerID
	}

	participants, total, err := h.participantService.ListParticipants(identity, input)
	if err != nil {
		respondParticipantError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToParticipantListResponse(participants, params.Page, params.Limit, total))
}

// GetParticipant returns a single participant record.
func (h *ParticipantHandler) GetParticipant(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	participant, err := h.participantService.GetParticipant(identity, id)
	if err != nil {
		respondParticipantError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToParticipantDTO(*participant))
}

// CreateParticipant registers a new participant owned by the caller.
func (h *ParticipantHandler) CreateParticipant(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateParticipantRequest struct {
		Name      string                   `json:"name" binding:"required"`
		Email     string                   `json:"email" binding:"required,email"`
		Phone     string                   `json:"phone" binding:"required"`
		Interests []string                 `json:"interests"`
		Status    models.ParticipantStatus `json:"status"`
	}

	var req CreateParticipantRequest
	if !bindJSON(c, &req) {
		return
	}

	participant, err := h.participantService.CreateParticipant(identity, services.CreateParticipantInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Interests: req.Interests,
		Status:    req.Status,
	})
	if err != nil {
		respondParticipantError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToParticipantDTO(*participant))
}

// UpdateParticipant applies a partial update to an existing record.
func (h *ParticipantHandler) UpdateParticipant(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateParticipantRequest struct {
		Name      *string                   `json:"name"`
		Phone     *string                   `json:"phone"`
		Interests []string                  `json:"interests"`
		Status    *models.ParticipantStatus `json:"status"`
	}

	var req UpdateParticipantRequest
	if !bindJSON(c, &req) {
		return
	}

	participant, err := h.participantService.UpdateParticipant(identity, id, services.UpdateParticipantInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Interests: req.Interests,
		Status:    req.Status,
	})
	if err != nil {
		respondParticipantError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToParticipantDTO(*participant))
}

// DeleteParticipant removes a participant record.
func (h *ParticipantHandler) DeleteParticipant(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.participantService.DeleteParticipant(identity, id); err != nil {
		respondParticipantError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Participant deleted"})
}

func respondParticipantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrParticipantNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrParticipantAccessDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrParticipantEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrPhoneRequired),
		errors.Is(err, services.ErrParticipantInvalidState):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
