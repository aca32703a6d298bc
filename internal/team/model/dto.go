// Package model provides domain models and DTOs for team module.
package model

// TeamMember represents a team member in API responses.
type TeamMember struct {
	Username *string `gorm:"column:username" json:"username"`
	Age      int     `gorm:"column:age"      json:"age"`
}

// NewMember describes a member to create along with a team.
type NewMember struct {
	Username *string `json:"username"`
	Age      int     `json:"age" binding:"gte=0"`
}

// AddTeamRequest represents the request to create a team with members.
type AddTeamRequest struct {
	Name    string      `json:"name" binding:"required"`
	Members []NewMember `json:"members" binding:"dive"`
}

// TeamResponse represents the response after creating or getting a team.
type TeamResponse struct {
	Name    string       `json:"name"`
	Members []TeamMember `json:"members"`
}
