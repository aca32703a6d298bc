// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sauce1111/memberdir/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetAgeAggregate returns count/sum/avg/max/min over all member ages.
	GetAgeAggregate(ctx context.Context) (*model.AgeAggregate, error)

	// GetTeamAverageAges returns the average member age per team.
	GetTeamAverageAges(ctx context.Context) ([]model.TeamAverageAge, error)

	// GetAgeBandDistribution returns member counts per age band.
	GetAgeBandDistribution(ctx context.Context) ([]model.AgeBandCount, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetAgeAggregate returns count/sum/avg/max/min over all member ages in a
// single query.
func (r *repository) GetAgeAggregate(ctx context.Context) (*model.AgeAggregate, error) {
	r.logger.Debugw("GetAgeAggregate called")

	var agg model.AgeAggregate
	err := r.db.WithContext(ctx).
		Table("members").
		Select(`
			COUNT(*) as member_count,
			COALESCE(SUM(age), 0) as age_sum,
			COALESCE(AVG(age), 0) as age_avg,
			COALESCE(MAX(age), 0) as age_max,
			COALESCE(MIN(age), 0) as age_min
		`).
		Scan(&agg).Error
	if err != nil {
		r.logger.Errorw("GetAgeAggregate database error", "error", err)
		return nil, err
	}

	r.logger.Debugw("GetAgeAggregate completed", "count", agg.Count)
	return &agg, nil
}

// GetTeamAverageAges returns the average member age per team, joined through
// the membership relation and grouped by team name.
func (r *repository) GetTeamAverageAges(ctx context.Context) ([]model.TeamAverageAge, error) {
	r.logger.Debugw("GetTeamAverageAges called")

	var averages []model.TeamAverageAge
	err := r.db.WithContext(ctx).
		Table("members").
		Select("teams.name as team_name, AVG(members.age) as average_age").
		Joins("JOIN teams ON teams.id = members.team_id").
		Group("teams.name").
		Order("teams.name ASC").
		Scan(&averages).Error
	if err != nil {
		r.logger.Errorw("GetTeamAverageAges database error", "error", err)
		return nil, err
	}

	if averages == nil {
		averages = []model.TeamAverageAge{}
	}

	r.logger.Debugw("GetTeamAverageAges completed", "count", len(averages))
	return averages, nil
}

// GetAgeBandDistribution returns member counts per age band computed with a
// CASE expression.
func (r *repository) GetAgeBandDistribution(ctx context.Context) ([]model.AgeBandCount, error) {
	r.logger.Debugw("GetAgeBandDistribution called")

	var bands []model.AgeBandCount
	err := r.db.WithContext(ctx).
		Table("members").
		Select(`
			CASE
				WHEN age BETWEEN 0 AND 20 THEN '0-20'
				WHEN age BETWEEN 21 AND 30 THEN '21-30'
				ELSE 'other'
			END as band,
			COUNT(*) as member_count
		`).
		Group("band").
		Order("band ASC").
		Scan(&bands).Error
	if err != nil {
		r.logger.Errorw("GetAgeBandDistribution database error", "error", err)
		return nil, err
	}

	if bands == nil {
		bands = []model.AgeBandCount{}
	}
	return bands, nil
}
