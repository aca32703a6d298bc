// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	memberModel "github.com/sauce1111/memberdir/internal/member/model"
	teamModel "github.com/sauce1111/memberdir/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create creates a new team.
	Create(ctx context.Context, name string) (*teamModel.Team, error)

	// GetByName finds a team by name.
	GetByName(ctx context.Context, name string) (*teamModel.Team, error)

	// List returns all teams ordered by name.
	List(ctx context.Context) ([]teamModel.Team, error)

	// AddMember creates a member belonging to the team.
	AddMember(ctx context.Context, teamID uint, username *string, age int) (*memberModel.Member, error)

	// GetMembers returns all members of the named team.
	GetMembers(ctx context.Context, name string) ([]teamModel.TeamMember, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new team repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create creates a new team.
func (r *repository) Create(ctx context.Context, name string) (*teamModel.Team, error) {
	team := &teamModel.Team{Name: name}

	err := r.db.WithContext(ctx).Create(team).Error
	if err != nil {
		if isDuplicateError(err) {
			return nil, teamModel.ErrTeamExists
		}
		return nil, err
	}

	return team, nil
}

// isDuplicateError checks if error is a unique constraint violation.
// Covers gorm's translated error plus the raw postgres and sqlite messages.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}

// GetByName finds a team by name.
func (r *repository) GetByName(ctx context.Context, name string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}

	return &team, nil
}

// List returns all teams ordered by name.
func (r *repository) List(ctx context.Context) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []teamModel.Team{}
	}
	return teams, nil
}

// AddMember creates a member belonging to the team. The team must already
// be persisted; the members table carries the foreign key.
func (r *repository) AddMember(ctx context.Context, teamID uint, username *string, age int) (*memberModel.Member, error) {
	member := &memberModel.Member{
		Username: username,
		Age:      age,
		TeamID:   &teamID,
	}

	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}

	return member, nil
}

// GetMembers returns all members of the named team ordered by username.
func (r *repository) GetMembers(ctx context.Context, name string) ([]teamModel.TeamMember, error) {
	var members []teamModel.TeamMember

	err := r.db.WithContext(ctx).
		Table("members").
		Select("members.username, members.age").
		Joins("JOIN teams ON teams.id = members.team_id").
		Where("teams.name = ?", name).
		Order("members.username ASC").
		Scan(&members).Error
	if err != nil {
		return nil, err
	}

	if members == nil {
		members = []teamModel.TeamMember{}
	}
	return members, nil
}
