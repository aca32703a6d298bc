// Package model provides domain models and projection rows for the member module.
package model

// MemberRow is a two-column projection of a member (username + age).
type MemberRow struct {
	Username *string `gorm:"column:username" json:"username"`
	Age      int     `gorm:"column:age"      json:"age"`
}

// Profile is a flat projection with renamed columns, used where the caller
// wants "name" rather than "username".
type Profile struct {
	Name *string `gorm:"column:name" json:"name"`
	Age  int     `gorm:"column:age"  json:"age"`
}

// MemberTeamRow pairs a member's username with the joined team name.
// TeamName is nil for members left unmatched by an outer join.
type MemberTeamRow struct {
	Username *string `gorm:"column:username"  json:"username"`
	TeamName *string `gorm:"column:team_name" json:"team_name"`
}

// UsernameAvg pairs a username with the directory-wide average age.
type UsernameAvg struct {
	Username   *string `gorm:"column:username"    json:"username"`
	AverageAge float64 `gorm:"column:average_age" json:"average_age"`
}

// AgeBand labels a member with a computed age band.
type AgeBand struct {
	Username *string `gorm:"column:username" json:"username"`
	Band     string  `gorm:"column:band"     json:"band"`
}

// TaggedUsername pairs a username with a constant tag column.
type TaggedUsername struct {
	Username *string `gorm:"column:username" json:"username"`
	Tag      string  `gorm:"column:tag"      json:"tag"`
}

// MemberPage is one page of members plus the total row count.
type MemberPage struct {
	Total   int64    `json:"total"`
	Members []Member `json:"members"`
}

// BulkRenameRequest represents the request to rename members below an age bound.
type BulkRenameRequest struct {
	Username string `json:"username" binding:"required"`
	AgeUnder int    `json:"age_under" binding:"gte=0"`
}

// BulkResponse reports how many rows a bulk operation touched.
type BulkResponse struct {
	Affected int64 `json:"affected"`
}

// Filter holds optional search conditions. A nil field means the condition
// is not applied.
type Filter struct {
	Username *string
	Age      *int
}

// IsEmpty reports whether no condition is set.
func (f Filter) IsEmpty() bool {
	return f.Username == nil && f.Age == nil
}
