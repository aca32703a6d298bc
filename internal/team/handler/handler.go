// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	teamModel "github.com/sauce1111/memberdir/internal/team/model"
	"github.com/sauce1111/memberdir/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// AddTeam handles POST /team/add request.
func (h *Handler) AddTeam(c *gin.Context) {
	var req teamModel.AddTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.AddTeam(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamExists) {
			errorResponse(c, "TEAM_EXISTS", "team name already exists", http.StatusBadRequest)
			return
		}
		if errors.Is(err, teamModel.ErrInvalidTeamName) {
			errorResponse(c, "INVALID_REQUEST", "name is required", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error adding team", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{
		"team": resp,
	})
}

// GetTeam handles GET /team/get request.
func (h *Handler) GetTeam(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		errorResponse(c, "INVALID_REQUEST", "name parameter is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetTeam(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			notFoundResponse(c, "team not found")
			return
		}
		h.logger.Errorw("error getting team", "name", name, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
