// Package repository provides data access layer for member module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sauce1111/memberdir/internal/member/model"
)

// Repository defines the interface for member data access operations.
type Repository interface {
	// Create persists a single member.
	Create(ctx context.Context, member *model.Member) error

	// CreateAll persists members in one batch.
	CreateAll(ctx context.Context, members []model.Member) error

	// GetByUsername finds exactly one member by username.
	// Returns ErrMemberNotFound for zero rows, ErrAmbiguousMember for more than one.
	GetByUsername(ctx context.Context, username string) (*model.Member, error)

	// GetByUsernameWithTeam is GetByUsername with the team association loaded.
	GetByUsernameWithTeam(ctx context.Context, username string) (*model.Member, error)

	// List returns all members.
	List(ctx context.Context) ([]model.Member, error)

	// Count returns the total number of members.
	Count(ctx context.Context) (int64, error)

	// ListFiltered returns members matching all set fields of the filter.
	ListFiltered(ctx context.Context, f model.Filter) ([]model.Member, error)

	// Search returns members matching all given scopes.
	Search(ctx context.Context, scopes ...Scope) ([]model.Member, error)

	// ListByAgeOrdered returns members of the given age, oldest first,
	// then by username ascending with NULL usernames last.
	ListByAgeOrdered(ctx context.Context, age int) ([]model.Member, error)

	// ListPage returns one page of members ordered by username descending,
	// plus the total count.
	ListPage(ctx context.Context, offset, limit int) (*model.MemberPage, error)

	// ListByTeamName returns members belonging to the named team.
	ListByTeamName(ctx context.Context, teamName string) ([]model.Member, error)

	// ListUsernameMatchingTeamName returns members whose username equals
	// some team's name, regardless of membership.
	ListUsernameMatchingTeamName(ctx context.Context) ([]model.Member, error)

	// ListWithTeamFilteredJoin returns every member with the team name
	// attached only when the member's team is the named one.
	ListWithTeamFilteredJoin(ctx context.Context, teamName string) ([]model.MemberTeamRow, error)

	// ListWithUnrelatedTeamJoin returns every member, outer-joined to teams
	// on username = team name instead of the membership relation.
	ListWithUnrelatedTeamJoin(ctx context.Context) ([]model.MemberTeamRow, error)

	// ListOldest returns members whose age equals the maximum age.
	ListOldest(ctx context.Context) ([]model.Member, error)

	// ListAgeAtLeastAverage returns members at or above the average age.
	ListAgeAtLeastAverage(ctx context.Context) ([]model.Member, error)

	// ListAgeInOlderThan returns members whose age appears among ages
	// strictly greater than the bound.
	ListAgeInOlderThan(ctx context.Context, age int) ([]model.Member, error)

	// ListUsernames returns the username column only.
	ListUsernames(ctx context.Context) ([]*string, error)

	// ListRows returns username+age rows.
	ListRows(ctx context.Context) ([]model.MemberRow, error)

	// ListProfiles returns members projected as profiles (name + age).
	ListProfiles(ctx context.Context) ([]model.Profile, error)

	// ListProfilesWithMaxAge returns profiles where every age is the
	// directory-wide maximum.
	ListProfilesWithMaxAge(ctx context.Context) ([]model.Profile, error)

	// ListUsernamesWithAverageAge pairs each username with the overall average age.
	ListUsernamesWithAverageAge(ctx context.Context) ([]model.UsernameAvg, error)

	// ListAgeBands labels members with exact-age bands ("10", "20", "other").
	ListAgeBands(ctx context.Context) ([]model.AgeBand, error)

	// ListAgeBandRanges labels members with ranged bands ("0-20", "21-30", "other").
	ListAgeBandRanges(ctx context.Context) ([]model.AgeBand, error)

	// ListTagged pairs each username with a constant tag column.
	ListTagged(ctx context.Context, tag string) ([]model.TaggedUsername, error)

	// ListDisplayNames returns "username_age" concatenations.
	ListDisplayNames(ctx context.Context) ([]*string, error)

	// ListUsernamesReplaced returns usernames with from replaced by to,
	// computed by the database.
	ListUsernamesReplaced(ctx context.Context, from, to string) ([]*string, error)

	// ListLowercaseUsernames returns members whose username is already lowercase.
	ListLowercaseUsernames(ctx context.Context) ([]*string, error)

	// BulkRenameUnder sets the username for members younger than ageUnder.
	// Bypasses loaded entities; re-read after calling.
	BulkRenameUnder(ctx context.Context, username string, ageUnder int) (int64, error)

	// BulkScaleAge multiplies every member's age by factor.
	// Bypasses loaded entities; re-read after calling.
	BulkScaleAge(ctx context.Context, factor int) (int64, error)

	// BulkAddAge adds delta to every member's age.
	BulkAddAge(ctx context.Context, delta int) (int64, error)

	// BulkDeleteOlderThan deletes members older than the bound.
	BulkDeleteOlderThan(ctx context.Context, age int) (int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new member repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create persists a single member.
func (r *repository) Create(ctx context.Context, member *model.Member) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		r.logger.Errorw("Create database error", "error", err)
		return err
	}
	return nil
}

// CreateAll persists members in one batch.
func (r *repository) CreateAll(ctx context.Context, members []model.Member) error {
	if len(members) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&members).Error; err != nil {
		r.logger.Errorw("CreateAll database error", "count", len(members), "error", err)
		return err
	}
	return nil
}

// GetByUsername finds exactly one member by username.
func (r *repository) GetByUsername(ctx context.Context, username string) (*model.Member, error) {
	r.logger.Debugw("GetByUsername called", "username", username)

	var members []model.Member
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Limit(2).
		Find(&members).Error
	if err != nil {
		r.logger.Errorw("GetByUsername database error", "username", username, "error", err)
		return nil, err
	}

	switch len(members) {
	case 0:
		r.logger.Debugw("GetByUsername member not found", "username", username)
		return nil, model.ErrMemberNotFound
	case 1:
		return &members[0], nil
	default:
		r.logger.Warnw("GetByUsername matched multiple members", "username", username)
		return nil, model.ErrAmbiguousMember
	}
}

// GetByUsernameWithTeam is GetByUsername with the team association loaded
// in the same round trip.
func (r *repository) GetByUsernameWithTeam(ctx context.Context, username string) (*model.Member, error) {
	r.logger.Debugw("GetByUsernameWithTeam called", "username", username)

	var members []model.Member
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("username = ?", username).
		Limit(2).
		Find(&members).Error
	if err != nil {
		r.logger.Errorw("GetByUsernameWithTeam database error", "username", username, "error", err)
		return nil, err
	}

	switch len(members) {
	case 0:
		return nil, model.ErrMemberNotFound
	case 1:
		return &members[0], nil
	default:
		return nil, model.ErrAmbiguousMember
	}
}

// List returns all members.
func (r *repository) List(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).Find(&members).Error
	if err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, err
	}
	if members == nil {
		members = []model.Member{}
	}
	return members, nil
}

// Count returns the total number of members.
func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Member{}).Count(&total).Error
	if err != nil {
		r.logger.Errorw("Count database error", "error", err)
		return 0, err
	}
	return total, nil
}

// ListFiltered returns members matching all set fields of the filter.
// Each set field appends one condition; an empty filter returns everything.
func (r *repository) ListFiltered(ctx context.Context, f model.Filter) ([]model.Member, error) {
	r.logger.Debugw("ListFiltered called", "empty", f.IsEmpty())

	tx := r.db.WithContext(ctx)
	if f.Username != nil {
		tx = tx.Where("username = ?", *f.Username)
	}
	if f.Age != nil {
		tx = tx.Where("age = ?", *f.Age)
	}

	var members []model.Member
	if err := tx.Find(&members).Error; err != nil {
		r.logger.Errorw("ListFiltered database error", "error", err)
		return nil, err
	}
	if members == nil {
		members = []model.Member{}
	}
	return members, nil
}

// Search returns members matching all given scopes.
func (r *repository) Search(ctx context.Context, scopes ...Scope) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).Scopes(scopes...).Find(&members).Error
	if err != nil {
		r.logger.Errorw("Search database error", "error", err)
		return nil, err
	}
	if members == nil {
		members = []model.Member{}
	}
	return members, nil
}

// ListByAgeOrdered returns members of the given age, ordered by age
// descending then username ascending with NULL usernames last.
func (r *repository) ListByAgeOrdered(ctx context.Context, age int) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Where("age = ?", age).
		Order("age DESC, username ASC NULLS LAST").
		Find(&members).Error
	if err != nil {
		r.logger.Errorw("ListByAgeOrdered database error", "age", age, "error", err)
		return nil, err
	}
	return members, nil
}

// ListPage returns one page of members ordered by username descending,
// plus the total count from a separate count query.
func (r *repository) ListPage(ctx context.Context, offset, limit int) (*model.MemberPage, error) {
	r.logger.Debugw("ListPage called", "offset", offset, "limit", limit)

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Member{}).Count(&total).Error; err != nil {
		r.logger.Errorw("ListPage count error", "error", err)
		return nil, err
	}

	var members []model.Member
	err := r.db.WithContext(ctx).
		Order("username DESC").
		Offset(offset).
		Limit(limit).
		Find(&members).Error
	if err != nil {
		r.logger.Errorw("ListPage database error", "offset", offset, "limit", limit, "error", err)
		return nil, err
	}
	if members == nil {
		members = []model.Member{}
	}

	return &model.MemberPage{Total: total, Members: members}, nil
}

// ListByTeamName returns members belonging to the named team.
func (r *repository) ListByTeamName(ctx context.Context, teamName string) ([]model.Member, error) {
	r.logger.Debugw("ListByTeamName called", "team_name", teamName)

	var members []model.Member
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN teams ON teams.id = members.team_id").
		Where("teams.name = ?", teamName).
		Order("members.username ASC").
		Find(&members).Error
	if err != nil {
		r.logger.Errorw("ListByTeamName database error", "team_name", teamName, "error", err)
		return nil, err
	}
	if members == nil {
		members = []model.Member{}
	}
	return members, nil
}

// ListUsernameMatchingTeamName returns members whose username equals some
// team's name. Cross join, no membership relation involved.
func (r *repository) ListUsernameMatchingTeamName(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Table("members").
		Select("members.*").
		Joins("CROSS JOIN teams").
		Where("members.username = teams.name").
		Order("members.username ASC").
		Scan(&members).Error
	if err != nil {
		r.logger.Errorw("ListUsernameMatchingTeamName database error", "error", err)
		return nil, err
	}
	if members == nil {
		members = []model.Member{}
	}
	return members, nil
}

// ListWithTeamFilteredJoin returns every member; the team name column is
// populated only when the member belongs to the named team, because the
// filter sits in the join condition rather than the where clause.
func (r *repository) ListWithTeamFilteredJoin(ctx context.Context, teamName string) ([]model.MemberTeamRow, error) {
	var rows []model.MemberTeamRow
	err := r.db.WithContext(ctx).
		Table("members").
		Select("members.username AS username, teams.name AS team_name").
		Joins("LEFT JOIN teams ON teams.id = members.team_id AND teams.name = ?", teamName).
		Order("members.id ASC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("ListWithTeamFilteredJoin database error", "team_name", teamName, "error", err)
		return nil, err
	}
	if rows == nil {
		rows = []model.MemberTeamRow{}
	}
	return rows, nil
}

// ListWithUnrelatedTeamJoin outer-joins members to teams on username = team
// name instead of the membership relation.
func (r *repository) ListWithUnrelatedTeamJoin(ctx context.Context) ([]model.MemberTeamRow, error) {
	var rows []model.MemberTeamRow
	err := r.db.WithContext(ctx).
		Table("members").
		Select("members.username AS username, teams.name AS team_name").
		Joins("LEFT JOIN teams ON members.username = teams.name").
		Order("members.id ASC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("ListWithUnrelatedTeamJoin database error", "error", err)
		return nil, err
	}
	if rows == nil {
		rows = []model.MemberTeamRow{}
	}
	return rows, nil
}

// ListOldest returns members whose age equals the maximum age.
func (r *repository) ListOldest(ctx context.Context) ([]model.Member, error) {
	sub := r.db.Model(&model.Member{}).Select("MAX(age)")

	var members []model.Member
	err := r.db.WithContext(ctx).
		Where("age = (?)", sub).
		Find(&members).Error
	if err != nil {
		r.logger.Errorw("ListOldest database error", "error", err)
		return nil, err
	}
	return members, nil
}

// ListAgeAtLeastAverage returns members at or above the average age.
func (r *repository) ListAgeAtLeastAverage(ctx context.Context) ([]model.Member, error) {
	sub := r.db.Model(&model.Member{}).Select("AVG(age)")

	var members []model.Member
	err := r.db.WithContext(ctx).
		Where("age >= (?)", sub).
		Order("age ASC").
		Find(&members).Error
	if err != nil {
		r.logger.Errorw("ListAgeAtLeastAverage database error", "error", err)
		return nil, err
	}
	return members, nil
}

// ListAgeInOlderThan returns members whose age appears among ages strictly
// greater than the bound.
func (r *repository) ListAgeInOlderThan(ctx context.Context, age int) ([]model.Member, error) {
	sub := r.db.Model(&model.Member{}).Select("age").Where("age > ?", age)

	var members []model.Member
	err := r.db.WithContext(ctx).
		Where("age IN (?)", sub).
		Order("age ASC").
		Find(&members).Error
	if err != nil {
		r.logger.Errorw("ListAgeInOlderThan database error", "age", age, "error", err)
		return nil, err
	}
	return members, nil
}

// ListUsernames returns the username column only.
func (r *repository) ListUsernames(ctx context.Context) ([]*string, error) {
	var usernames []*string
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Order("id ASC").
		Pluck("username", &usernames).Error
	if err != nil {
		r.logger.Errorw("ListUsernames database error", "error", err)
		return nil, err
	}
	return usernames, nil
}

// ListRows returns username+age rows.
func (r *repository) ListRows(ctx context.Context) ([]model.MemberRow, error) {
	var rows []model.MemberRow
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Select("username, age").
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("ListRows database error", "error", err)
		return nil, err
	}
	if rows == nil {
		rows = []model.MemberRow{}
	}
	return rows, nil
}

// ListProfiles projects members into profiles, renaming username to name.
func (r *repository) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Select("username AS name, age").
		Order("id ASC").
		Scan(&profiles).Error
	if err != nil {
		r.logger.Errorw("ListProfiles database error", "error", err)
		return nil, err
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}
	return profiles, nil
}

// ListProfilesWithMaxAge projects members into profiles whose age column is
// the directory-wide maximum from a scalar subquery.
func (r *repository) ListProfilesWithMaxAge(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Select("username AS name, (SELECT MAX(age) FROM members) AS age").
		Order("id ASC").
		Scan(&profiles).Error
	if err != nil {
		r.logger.Errorw("ListProfilesWithMaxAge database error", "error", err)
		return nil, err
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}
	return profiles, nil
}

// ListUsernamesWithAverageAge pairs each username with the overall average
// age from a scalar subquery in the select list.
func (r *repository) ListUsernamesWithAverageAge(ctx context.Context) ([]model.UsernameAvg, error) {
	var rows []model.UsernameAvg
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Select("username, (SELECT AVG(age) FROM members) AS average_age").
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("ListUsernamesWithAverageAge database error", "error", err)
		return nil, err
	}
	if rows == nil {
		rows = []model.UsernameAvg{}
	}
	return rows, nil
}

// ListAgeBands labels members by exact age.
func (r *repository) ListAgeBands(ctx context.Context) ([]model.AgeBand, error) {
	var bands []model.AgeBand
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Select(`username,
			CASE
				WHEN age = 10 THEN '10'
				WHEN age = 20 THEN '20'
				ELSE 'other'
			END AS band`).
		Order("id ASC").
		Scan(&bands).Error
	if err != nil {
		r.logger.Errorw("ListAgeBands database error", "error", err)
		return nil, err
	}
	if bands == nil {
		bands = []model.AgeBand{}
	}
	return bands, nil
}

// ListAgeBandRanges labels members by age range.
func (r *repository) ListAgeBandRanges(ctx context.Context) ([]model.AgeBand, error) {
	var bands []model.AgeBand
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Select(`username,
			CASE
				WHEN age BETWEEN 0 AND 20 THEN '0-20'
				WHEN age BETWEEN 21 AND 30 THEN '21-30'
				ELSE 'other'
			END AS band`).
		Order("id ASC").
		Scan(&bands).Error
	if err != nil {
		r.logger.Errorw("ListAgeBandRanges database error", "error", err)
		return nil, err
	}
	if bands == nil {
		bands = []model.AgeBand{}
	}
	return bands, nil
}

// ListTagged pairs each username with a constant tag column.
func (r *repository) ListTagged(ctx context.Context, tag string) ([]model.TaggedUsername, error) {
	var rows []model.TaggedUsername
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Select("username, ? AS tag", tag).
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("ListTagged database error", "tag", tag, "error", err)
		return nil, err
	}
	if rows == nil {
		rows = []model.TaggedUsername{}
	}
	return rows, nil
}

// ListDisplayNames returns "username_age" concatenations computed by the
// database. Members without a username yield a NULL entry.
func (r *repository) ListDisplayNames(ctx context.Context) ([]*string, error) {
	var rows []struct {
		DisplayName *string `gorm:"column:display_name"`
	}
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Select("username || '_' || CAST(age AS TEXT) AS display_name").
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("ListDisplayNames database error", "error", err)
		return nil, err
	}

	names := make([]*string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.DisplayName)
	}
	return names, nil
}

// ListUsernamesReplaced returns usernames with from replaced by to, computed
// by the database REPLACE function.
func (r *repository) ListUsernamesReplaced(ctx context.Context, from, to string) ([]*string, error) {
	var rows []struct {
		Username *string `gorm:"column:username"`
	}
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Select("REPLACE(username, ?, ?) AS username", from, to).
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("ListUsernamesReplaced database error", "error", err)
		return nil, err
	}

	usernames := make([]*string, 0, len(rows))
	for _, row := range rows {
		usernames = append(usernames, row.Username)
	}
	return usernames, nil
}

// ListLowercaseUsernames returns usernames that are already lowercase.
func (r *repository) ListLowercaseUsernames(ctx context.Context) ([]*string, error) {
	var usernames []*string
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Where("username = LOWER(username)").
		Order("id ASC").
		Pluck("username", &usernames).Error
	if err != nil {
		r.logger.Errorw("ListLowercaseUsernames database error", "error", err)
		return nil, err
	}
	return usernames, nil
}

// BulkRenameUnder sets the username for members younger than ageUnder.
// Issued directly against the store; previously loaded members go stale.
func (r *repository) BulkRenameUnder(ctx context.Context, username string, ageUnder int) (int64, error) {
	r.logger.Infow("BulkRenameUnder called", "username", username, "age_under", ageUnder)

	result := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Where("age < ?", ageUnder).
		Update("username", username)
	if result.Error != nil {
		r.logger.Errorw("BulkRenameUnder database error", "error", result.Error)
		return 0, result.Error
	}

	r.logger.Infow("BulkRenameUnder completed", "rows_affected", result.RowsAffected)
	return result.RowsAffected, nil
}

// BulkScaleAge multiplies every member's age by factor.
func (r *repository) BulkScaleAge(ctx context.Context, factor int) (int64, error) {
	r.logger.Infow("BulkScaleAge called", "factor", factor)

	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&model.Member{}).
		Update("age", gorm.Expr("age * ?", factor))
	if result.Error != nil {
		r.logger.Errorw("BulkScaleAge database error", "error", result.Error)
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// BulkAddAge adds delta to every member's age.
func (r *repository) BulkAddAge(ctx context.Context, delta int) (int64, error) {
	r.logger.Infow("BulkAddAge called", "delta", delta)

	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&model.Member{}).
		Update("age", gorm.Expr("age + ?", delta))
	if result.Error != nil {
		r.logger.Errorw("BulkAddAge database error", "error", result.Error)
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// BulkDeleteOlderThan deletes members older than the bound.
func (r *repository) BulkDeleteOlderThan(ctx context.Context, age int) (int64, error) {
	r.logger.Infow("BulkDeleteOlderThan called", "age", age)

	result := r.db.WithContext(ctx).
		Where("age > ?", age).
		Delete(&model.Member{})
	if result.Error != nil {
		r.logger.Errorw("BulkDeleteOlderThan database error", "error", result.Error)
		return 0, result.Error
	}

	r.logger.Infow("BulkDeleteOlderThan completed", "rows_affected", result.RowsAffected)
	return result.RowsAffected, nil
}
