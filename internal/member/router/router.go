// Package router provides member module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sauce1111/memberdir/internal/member/handler"
	"github.com/sauce1111/memberdir/internal/member/repository"
	"github.com/sauce1111/memberdir/internal/member/service"
)

// RegisterRoutes registers member module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.GET("/members", h.ListPage)
	r.GET("/members/search", h.Search)
	r.GET("/members/get", h.GetMember)
	r.POST("/members/bulk/rename", h.BulkRename)
	r.DELETE("/members", h.DeleteOlderThan)
}
