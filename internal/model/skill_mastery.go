package model

import "time"

type MasteryStatus string

const (
	MasteryNeedsPractice MasteryStatus = "needs_practice"
	MasteryProficient    MasteryStatus = "proficient"
	MasteryMastered      MasteryStatus = "mastered"
)

// UserSkillMastery tracks per-concept mastery, at most one row per (user, concept tag).
// Only the mastered transition is driven by follow-up grading; the other statuses are
// set by tutors.
// swagger:model UserSkillMastery
type UserSkillMastery struct {
	BaseModel
	UserID      uint          `gorm:"not null;uniqueIndex:idx_user_concept" json:"userId"`
	ConceptTag  string        `gorm:"size:100;not null;uniqueIndex:idx_user_concept" json:"conceptTag"`
	Status      MasteryStatus `gorm:"size:20;default:'needs_practice'" json:"status"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

func (UserSkillMastery) TableName() string {
	return "user_skill_mastery"
}
