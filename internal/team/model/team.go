package model

import (
	"time"

	"gorm.io/gorm"
)

// Team represents a team entity.
// Matches the teams table schema.
type Team struct {
	ID        uint      `gorm:"primaryKey;column:id"                               json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;not null"                         json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"                         json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}
