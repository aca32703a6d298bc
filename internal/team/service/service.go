// Package service provides business logic layer for team module.
package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	teamModel "github.com/sauce1111/memberdir/internal/team/model"
	"github.com/sauce1111/memberdir/internal/team/repository"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// AddTeam creates a new team with its initial members.
	AddTeam(ctx context.Context, req *teamModel.AddTeamRequest) (*teamModel.TeamResponse, error)

	// GetTeam returns a team with its members.
	GetTeam(ctx context.Context, name string) (*teamModel.TeamResponse, error)
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// AddTeam creates a new team with members in a transaction. The team row is
// persisted before its members so the foreign key always resolves.
func (s *service) AddTeam(ctx context.Context, req *teamModel.AddTeamRequest) (*teamModel.TeamResponse, error) {
	if req.Name == "" {
		return nil, teamModel.ErrInvalidTeamName
	}

	var result *teamModel.TeamResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		team, err := txRepo.Create(ctx, req.Name)
		if err != nil {
			return err
		}

		for _, m := range req.Members {
			if _, err := txRepo.AddMember(ctx, team.ID, m.Username, m.Age); err != nil {
				return err
			}
		}

		members, err := txRepo.GetMembers(ctx, req.Name)
		if err != nil {
			return err
		}

		result = &teamModel.TeamResponse{
			Name:    req.Name,
			Members: members,
		}
		return nil
	})
	if err != nil {
		s.logger.Errorw("AddTeam failed", "name", req.Name, "error", err)
		return nil, err
	}

	s.logger.Infow("AddTeam completed", "name", req.Name, "member_count", len(result.Members))
	return result, nil
}

// GetTeam returns a team with its members.
func (s *service) GetTeam(ctx context.Context, name string) (*teamModel.TeamResponse, error) {
	if name == "" {
		return nil, teamModel.ErrInvalidTeamName
	}

	if _, err := s.repo.GetByName(ctx, name); err != nil {
		return nil, err
	}

	members, err := s.repo.GetMembers(ctx, name)
	if err != nil {
		return nil, err
	}

	return &teamModel.TeamResponse{
		Name:    name,
		Members: members,
	}, nil
}
