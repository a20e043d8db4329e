package model

// OfficialQuestionMapping resolves (test, section, question number) on an official
// paper to the canonical question that models it. Static lookup data.
// swagger:model OfficialQuestionMapping
type OfficialQuestionMapping struct {
	BaseModel
	OfficialTestID      string `gorm:"size:64;not null;uniqueIndex:idx_official_question" json:"officialTestId"`
	Section             string `gorm:"size:100;not null;uniqueIndex:idx_official_question" json:"section"`
	QuestionNumber      int    `gorm:"not null;uniqueIndex:idx_official_question" json:"questionNumber"`
	CanonicalQuestionID string `gorm:"size:36;not null" json:"canonicalQuestionId"`
}

func (OfficialQuestionMapping) TableName() string {
	return "official_question_mappings"
}
