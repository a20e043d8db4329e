package model

// AnswerResult is the append-only grading record, one row per quiz question.
// swagger:model AnswerResult
type AnswerResult struct {
	BaseModel
	UserID           uint   `gorm:"index;not null" json:"userId"`
	QuizID           string `gorm:"size:36;index;not null" json:"quizId"`
	QuizQuestionID   string `gorm:"size:36;not null" json:"quizQuestionId"`
	SelectedOptionID string `gorm:"size:36;not null" json:"selectedOptionId"`
	IsCorrect        bool   `gorm:"not null" json:"isCorrect"`
}

func (AnswerResult) TableName() string {
	return "answer_results"
}
