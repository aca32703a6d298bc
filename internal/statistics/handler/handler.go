// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sauce1111/memberdir/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetAgeAggregate handles GET /statistics/aggregate request.
func (h *Handler) GetAgeAggregate(c *gin.Context) {
	resp, err := h.service.GetAgeAggregate(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting age aggregate", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTeamAverageAges handles GET /statistics/teams/average-age request.
func (h *Handler) GetTeamAverageAges(c *gin.Context) {
	resp, err := h.service.GetTeamAverageAges(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting team average ages", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetAgeBandDistribution handles GET /statistics/age-bands request.
func (h *Handler) GetAgeBandDistribution(c *gin.Context) {
	resp, err := h.service.GetAgeBandDistribution(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting age band distribution", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
