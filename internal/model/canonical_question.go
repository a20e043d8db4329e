package model

// CanonicalQuestion is the single authored version of a question, independent of
// which official test/section/number it appeared under. Immutable once authored.
// swagger:model CanonicalQuestion
type CanonicalQuestion struct {
	UUIDBase
	Text            string           `gorm:"type:text;not null" json:"text"`
	Options         []QuestionOption `gorm:"foreignKey:QuestionID" json:"options"`
	CorrectOptionID string           `gorm:"size:36" json:"-"`
	ConceptTag      string           `gorm:"size:100;index" json:"conceptTag,omitempty"`
	VideoURL        string           `gorm:"size:512" json:"videoUrl,omitempty"`
	PDFURL          string           `gorm:"size:512" json:"pdfUrl,omitempty"`
}

func (CanonicalQuestion) TableName() string {
	return "canonical_questions"
}

// swagger:model QuestionOption
type QuestionOption struct {
	UUIDBase
	QuestionID string `gorm:"size:36;index;not null" json:"-"`
	Label      string `gorm:"size:10;not null" json:"label"` // A, B, C, D
	Text       string `gorm:"type:text;not null" json:"text"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
