// Package handler provides HTTP handlers for member endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sauce1111/memberdir/internal/member/model"
	"github.com/sauce1111/memberdir/internal/member/service"
)

// Handler handles HTTP requests for member endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new member handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Search handles GET /members/search request.
// Both username and age query parameters are optional; absent parameters
// apply no condition.
func (h *Handler) Search(c *gin.Context) {
	var f model.Filter

	if username, ok := c.GetQuery("username"); ok {
		f.Username = &username
	}
	if raw, ok := c.GetQuery("age"); ok {
		age, err := strconv.Atoi(raw)
		if err != nil {
			errorResponse(c, "INVALID_REQUEST", "age must be an integer", http.StatusBadRequest)
			return
		}
		f.Age = &age
	}

	members, err := h.service.Search(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, model.ErrInvalidAge) {
			errorResponse(c, "INVALID_REQUEST", "age must not be negative", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error searching members", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"members": members,
		"total":   len(members),
	})
}

// ListPage handles GET /members request.
func (h *Handler) ListPage(c *gin.Context) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "offset must be an integer", http.StatusBadRequest)
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "limit must be an integer", http.StatusBadRequest)
		return
	}

	page, err := h.service.ListPage(c.Request.Context(), offset, limit)
	if err != nil {
		if errors.Is(err, model.ErrInvalidPage) {
			errorResponse(c, "INVALID_REQUEST", "invalid paging parameters", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error listing members", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetMember handles GET /members/get request.
// The with_team query flag loads the team association in the same query.
func (h *Handler) GetMember(c *gin.Context) {
	username := c.Query("username")
	withTeam := c.Query("with_team") == "true"

	member, err := h.service.GetMember(c.Request.Context(), username, withTeam)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMemberNotFound):
			notFoundResponse(c, "member not found")
		case errors.Is(err, model.ErrAmbiguousMember):
			errorResponse(c, "AMBIGUOUS", "multiple members matched", http.StatusConflict)
		case errors.Is(err, model.ErrInvalidUsername):
			errorResponse(c, "INVALID_REQUEST", "username is required", http.StatusBadRequest)
		default:
			h.logger.Errorw("error getting member", "username", username, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, member)
}

// BulkRename handles POST /members/bulk/rename request.
func (h *Handler) BulkRename(c *gin.Context) {
	var req model.BulkRenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	affected, err := h.service.BulkRename(c.Request.Context(), req.Username, req.AgeUnder)
	if err != nil {
		if errors.Is(err, model.ErrInvalidUsername) || errors.Is(err, model.ErrInvalidAge) {
			errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error renaming members", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, model.BulkResponse{Affected: affected})
}

// DeleteOlderThan handles DELETE /members request.
func (h *Handler) DeleteOlderThan(c *gin.Context) {
	raw, ok := c.GetQuery("older_than")
	if !ok {
		errorResponse(c, "INVALID_REQUEST", "older_than parameter is required", http.StatusBadRequest)
		return
	}
	age, err := strconv.Atoi(raw)
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "older_than must be an integer", http.StatusBadRequest)
		return
	}

	affected, err := h.service.DeleteOlderThan(c.Request.Context(), age)
	if err != nil {
		if errors.Is(err, model.ErrInvalidAge) {
			errorResponse(c, "INVALID_REQUEST", "older_than must not be negative", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error deleting members", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, model.BulkResponse{Affected: affected})
}
