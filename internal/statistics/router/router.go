// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sauce1111/memberdir/internal/statistics/handler"
	"github.com/sauce1111/memberdir/internal/statistics/repository"
	"github.com/sauce1111/memberdir/internal/statistics/service"
)

// RegisterRoutes registers statistics module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.GET("/statistics/aggregate", h.GetAgeAggregate)
	r.GET("/statistics/teams/average-age", h.GetTeamAverageAges)
	r.GET("/statistics/age-bands", h.GetAgeBandDistribution)
}
