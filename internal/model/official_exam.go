package model

// OfficialTest is an official SAT/PSAT paper students can report mistakes against.
// swagger:model OfficialTest
type OfficialTest struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Enabled     bool   `gorm:"default:true" json:"enabled"`
}

func (OfficialTest) TableName() string {
	return "official_tests"
}
