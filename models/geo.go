package models

import "gorm.io/gorm"

// State and City are static geographic reference data seeded at bootstrap.

type State struct {
	gorm.Model
	Name   string `gorm:"size:191;not null" json:"name"`
	Code   string `gorm:"uniqueIndex;size:16;not null" json:"code"`
	Cities []City `json:"cities,omitempty"`
}

// City names are unique within a state, not globally.
type City struct {
	gorm.Model
	Name    string `gorm:"size:191;not null;uniqueIndex:idx_city_state" json:"name"`
	StateID uint   `gorm:"not null;uniqueIndex:idx_city_state" json:"stateId"`
	State   *State `json:"state,omitempty"`
}
