package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"habitloop/internal/service"
)

type PartnershipHandler struct {
	partnershipService *service.PartnershipService
}

func NewPartnershipHandler(partnershipService *service.PartnershipService) *PartnershipHandler {
	return &PartnershipHandler{
		partnershipService: partnershipService,
	}
}

func partnershipStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSelfPartnership),
		errors.Is(err, service.ErrPartnershipSettled):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPartnershipExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrPartnershipNotTarget):
		return http.StatusForbidden
	case errors.Is(err, pgx.ErrNoRows):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Invite handles POST /partnerships
func (h *PartnershipHandler) Invite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, err := h.partnershipService.Invite(c.Request.Context(), userID, req.Email)
	if err != nil {
		c.JSON(partnershipStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Respond handles POST /partnerships/:id/respond
func (h *PartnershipHandler) Respond(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	partnershipID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid partnership id"})
		return
	}

	var req struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, err := h.partnershipService.Respond(c.Request.Context(), userID, partnershipID, *req.Accept)
	if err != nil {
		c.JSON(partnershipStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

// Partners handles GET /partnerships/partners
func (h *PartnershipHandler) Partners(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	partners, err := h.partnershipService.Partners(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch partners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"partners": partners})
}

// Pending handles GET /partnerships/pending
func (h *PartnershipHandler) Pending(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pending, err := h.partnershipService.PendingInvites(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch invites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}
