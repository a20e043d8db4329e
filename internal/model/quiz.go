package model

type QuizStatus string

const (
	QuizPending   QuizStatus = "pending"
	QuizCompleted QuizStatus = "completed"
)

// Quiz is a personalized practice quiz assembled from a student's missed questions.
// Status moves pending -> completed exactly once, on grading.
// swagger:model Quiz
type Quiz struct {
	UUIDBase
	UserID       uint           `gorm:"index;not null" json:"userId"`
	Status       QuizStatus     `gorm:"size:20;default:'pending'" json:"status"`
	SourceTestID string         `gorm:"size:64" json:"sourceTestId,omitempty"`
	Score        float64        `gorm:"default:0" json:"score"`
	Questions    []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion links a quiz to a canonical question at a fixed 1-based position.
// Immutable after assembly.
// swagger:model QuizQuestion
type QuizQuestion struct {
	UUIDBase
	QuizID              string             `gorm:"size:36;not null;uniqueIndex:idx_quiz_order" json:"quizId"`
	CanonicalQuestionID string             `gorm:"size:36;not null" json:"canonicalQuestionId"`
	Order               int                `gorm:"not null;uniqueIndex:idx_quiz_order" json:"order"`
	Canonical           *CanonicalQuestion `gorm:"foreignKey:CanonicalQuestionID" json:"question,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
