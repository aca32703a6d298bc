// Package model provides DTOs for statistics module.
package model

// AgeAggregate holds the directory-wide age aggregates.
type AgeAggregate struct {
	Count   int64   `gorm:"column:member_count" json:"count"`
	Sum     int64   `gorm:"column:age_sum"      json:"sum"`
	Average float64 `gorm:"column:age_avg"      json:"average"`
	Max     int     `gorm:"column:age_max"      json:"max"`
	Min     int     `gorm:"column:age_min"      json:"min"`
}

// TeamAverageAge pairs a team name with the average age of its members.
type TeamAverageAge struct {
	TeamName   string  `gorm:"column:team_name"   json:"team_name"`
	AverageAge float64 `gorm:"column:average_age" json:"average_age"`
}

// AgeBandCount pairs an age band label with the number of members in it.
type AgeBandCount struct {
	Band  string `gorm:"column:band"         json:"band"`
	Count int64  `gorm:"column:member_count" json:"count"`
}

// AggregateResponse wraps the age aggregate for API responses.
type AggregateResponse struct {
	Aggregate AgeAggregate `json:"aggregate"`
}

// TeamAverageAgesResponse wraps per-team averages for API responses.
type TeamAverageAgesResponse struct {
	Teams []TeamAverageAge `json:"teams"`
	Total int              `json:"total"`
}

// AgeBandsResponse wraps the band distribution for API responses.
type AgeBandsResponse struct {
	Bands []AgeBandCount `json:"bands"`
}
