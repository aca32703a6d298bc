// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sauce1111/memberdir/internal/statistics/model"
	"github.com/sauce1111/memberdir/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetAgeAggregate returns the directory-wide age aggregates.
	GetAgeAggregate(ctx context.Context) (*model.AggregateResponse, error)

	// GetTeamAverageAges returns the average member age per team.
	GetTeamAverageAges(ctx context.Context) (*model.TeamAverageAgesResponse, error)

	// GetAgeBandDistribution returns member counts per age band.
	GetAgeBandDistribution(ctx context.Context) (*model.AgeBandsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetAgeAggregate returns the directory-wide age aggregates.
func (s *service) GetAgeAggregate(ctx context.Context) (*model.AggregateResponse, error) {
	agg, err := s.repo.GetAgeAggregate(ctx)
	if err != nil {
		s.logger.Errorw("GetAgeAggregate failed", "error", err)
		return nil, err
	}

	return &model.AggregateResponse{Aggregate: *agg}, nil
}

// GetTeamAverageAges returns the average member age per team.
func (s *service) GetTeamAverageAges(ctx context.Context) (*model.TeamAverageAgesResponse, error) {
	teams, err := s.repo.GetTeamAverageAges(ctx)
	if err != nil {
		s.logger.Errorw("GetTeamAverageAges failed", "error", err)
		return nil, err
	}

	if teams == nil {
		teams = []model.TeamAverageAge{}
	}

	return &model.TeamAverageAgesResponse{
		Teams: teams,
		Total: len(teams),
	}, nil
}

// GetAgeBandDistribution returns member counts per age band.
func (s *service) GetAgeBandDistribution(ctx context.Context) (*model.AgeBandsResponse, error) {
	bands, err := s.repo.GetAgeBandDistribution(ctx)
	if err != nil {
		s.logger.Errorw("GetAgeBandDistribution failed", "error", err)
		return nil, err
	}

	if bands == nil {
		bands = []model.AgeBandCount{}
	}

	return &model.AgeBandsResponse{Bands: bands}, nil
}
