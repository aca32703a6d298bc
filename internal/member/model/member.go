package model

import (
	"time"

	"gorm.io/gorm"
)

// Member represents a directory member.
// Matches the members table schema. Username is nullable: members imported
// from legacy rosters may not have one yet.
type Member struct {
	ID        uint      `gorm:"primaryKey;column:id"                                    json:"id"`
	Username  *string   `gorm:"column:username;type:varchar(255);index:idx_members_username" json:"username"`
	Age       int       `gorm:"column:age;not null;default:0"                           json:"age"`
	TeamID    *uint     `gorm:"column:team_id;index:idx_members_team_id"                json:"team_id,omitempty"`
	Team      *Team     `gorm:"foreignKey:TeamID"                                       json:"team,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;not null"                              json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"                              json:"-"`
}

// TableName specifies the table name for GORM.
func (Member) TableName() string {
	return "members"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (m *Member) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}

// Team mirrors the team entity for association loading from the member side.
// The authoritative definition lives in the team module; both map the same
// teams table.
type Team struct {
	ID        uint      `gorm:"primaryKey;column:id"                          json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;not null"                    json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"                    json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}
