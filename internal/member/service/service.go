// Package service provides business logic layer for member module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sauce1111/memberdir/internal/member/model"
	"github.com/sauce1111/memberdir/internal/member/repository"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Service defines the interface for member business logic operations.
type Service interface {
	// Search returns members matching the optional username/age conditions.
	Search(ctx context.Context, f model.Filter) ([]model.Member, error)

	// GetMember returns one member by username, optionally with the team loaded.
	GetMember(ctx context.Context, username string, withTeam bool) (*model.Member, error)

	// ListPage returns one page of members plus the total count.
	ListPage(ctx context.Context, offset, limit int) (*model.MemberPage, error)

	// BulkRename renames members younger than ageUnder; returns rows affected.
	BulkRename(ctx context.Context, username string, ageUnder int) (int64, error)

	// DeleteOlderThan deletes members older than age; returns rows affected.
	DeleteOlderThan(ctx context.Context, age int) (int64, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new member service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

// Search returns members matching the optional username/age conditions.
// An empty filter returns the whole directory.
func (s *service) Search(ctx context.Context, f model.Filter) ([]model.Member, error) {
	if f.Age != nil && *f.Age < 0 {
		return nil, model.ErrInvalidAge
	}

	members, err := s.repo.Search(ctx, repository.AllEq(f.Username, f.Age))
	if err != nil {
		s.logger.Errorw("Search failed", "error", err)
		return nil, err
	}

	s.logger.Debugw("Search completed", "count", len(members))
	return members, nil
}

// GetMember returns one member by username.
func (s *service) GetMember(ctx context.Context, username string, withTeam bool) (*model.Member, error) {
	if username == "" {
		return nil, model.ErrInvalidUsername
	}

	if withTeam {
		return s.repo.GetByUsernameWithTeam(ctx, username)
	}
	return s.repo.GetByUsername(ctx, username)
}

// ListPage returns one page of members plus the total count. A zero limit
// falls back to the default page size.
func (s *service) ListPage(ctx context.Context, offset, limit int) (*model.MemberPage, error) {
	if offset < 0 || limit < 0 || limit > maxPageLimit {
		return nil, model.ErrInvalidPage
	}
	if limit == 0 {
		limit = defaultPageLimit
	}

	return s.repo.ListPage(ctx, offset, limit)
}

// BulkRename renames members younger than ageUnder.
func (s *service) BulkRename(ctx context.Context, username string, ageUnder int) (int64, error) {
	if username == "" {
		return 0, model.ErrInvalidUsername
	}
	if ageUnder < 0 {
		return 0, model.ErrInvalidAge
	}

	affected, err := s.repo.BulkRenameUnder(ctx, username, ageUnder)
	if err != nil {
		s.logger.Errorw("BulkRename failed", "error", err)
		return 0, err
	}

	s.logger.Infow("BulkRename completed", "username", username, "age_under", ageUnder, "affected", affected)
	return affected, nil
}

// DeleteOlderThan deletes members older than age.
func (s *service) DeleteOlderThan(ctx context.Context, age int) (int64, error) {
	if age < 0 {
		return 0, model.ErrInvalidAge
	}

	affected, err := s.repo.BulkDeleteOlderThan(ctx, age)
	if err != nil {
		s.logger.Errorw("DeleteOlderThan failed", "error", err)
		return 0, err
	}

	s.logger.Infow("DeleteOlderThan completed", "age", age, "affected", affected)
	return affected, nil
}
