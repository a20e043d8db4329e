package repository

import (
	"sat_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *QuizRepository) WithTx(tx *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: tx}
}

// CreateWithQuestions inserts the quiz row and its question rows in one transaction,
// so a failed question insert never leaves an orphaned quiz behind.
func (r *QuizRepository) CreateWithQuestions(quiz *model.Quiz, questions []model.QuizQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
		}
		return tx.Create(&questions).Error
	})
}

// FindByIDForUser scopes the lookup by owner; a quiz owned by someone else is
// indistinguishable from a missing one.
func (r *QuizRepository) FindByIDForUser(id string, userID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindQuestions(quizID string) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Preload("Canonical").Preload("Canonical.Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_options.`order` ASC")
	}).
		Where("quiz_id = ?", quizID).
		Order("quiz_questions.`order` ASC").
		Find(&questions).Error
	return questions, err
}

// CompleteIfPending atomically transitions the quiz to completed and records the
// score. The affected-row count disambiguates a lost race: zero rows means another
// submission got there first.
func (r *QuizRepository) CompleteIfPending(quizID string, score float64) (int64, error) {
	result := r.DB.Model(&model.Quiz{}).
		Where("id = ? AND status = ?", quizID, model.QuizPending).
		Updates(map[string]interface{}{"status": model.QuizCompleted, "score": score})
	return result.RowsAffected, result.Error
}

func (r *QuizRepository) ListByUser(userID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) CountQuestions(quizID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizQuestion{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}
