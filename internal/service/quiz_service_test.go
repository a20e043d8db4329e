package service

import (
	"sat_tutor_backend/internal/model"
	"sat_tutor_backend/internal/repository"
	"sat_tutor_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuizService(db *gorm.DB) *QuizService {
	return NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewAnswerResultRepository(db),
		db,
	)
}

// seedQuiz creates a pending quiz over the given canonical questions and returns it
// with its quiz questions in position order.
func seedQuiz(t *testing.T, db *gorm.DB, userID uint, canonical ...*model.CanonicalQuestion) (*model.Quiz, []model.QuizQuestion) {
	t.Helper()

	quiz := &model.Quiz{
		UserID:       userID,
		Status:       model.QuizPending,
		SourceTestID: "sat-practice-1",
	}
	questions := make([]model.QuizQuestion, 0, len(canonical))
	for i, q := range canonical {
		questions = append(questions, model.QuizQuestion{
			CanonicalQuestionID: q.ID,
			Order:               i + 1,
		})
	}

	repo := repository.NewQuizRepository(db)
	require.NoError(t, repo.CreateWithQuestions(quiz, questions))

	loaded, err := repo.FindQuestions(quiz.ID)
	require.NoError(t, err)
	require.Len(t, loaded, len(canonical))
	return quiz, loaded
}

// answerAll selects the correct option for every question, then flips the listed
// positions to a wrong option.
func answerAll(questions []model.QuizQuestion, wrongPositions ...int) map[string]string {
	wrong := make(map[int]bool, len(wrongPositions))
	for _, p := range wrongPositions {
		wrong[p] = true
	}

	answers := make(map[string]string, len(questions))
	for i, q := range questions {
		if wrong[i] {
			for _, opt := range q.Canonical.Options {
				if opt.ID != q.Canonical.CorrectOptionID {
					answers[q.ID] = opt.ID
					break
				}
			}
			continue
		}
		answers[q.ID] = q.Canonical.CorrectOptionID
	}
	return answers
}

func TestGetQuizForUserReturnsOrderedQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	q1 := seedQuestion(t, db, "q-01", "quadratics", "A")
	q2 := seedQuestion(t, db, "q-02", "quadratics", "B")
	quiz, _ := seedQuiz(t, db, 1, q1, q2)

	view, err := svc.GetQuizForUser(quiz.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, view.ID)
	assert.Equal(t, model.QuizPending, view.Status)
	require.Len(t, view.Questions, 2)
	assert.Equal(t, 1, view.Questions[0].Order)
	assert.Equal(t, q1.ID, view.Questions[0].CanonicalQuestionID)
	assert.Equal(t, 2, view.Questions[1].Order)
	assert.Equal(t, q2.ID, view.Questions[1].CanonicalQuestionID)
	require.Len(t, view.Questions[0].Options, 4)
	assert.Equal(t, "A", view.Questions[0].Options[0].Label)
}

func TestGetQuizForUserScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	q1 := seedQuestion(t, db, "q-01", "quadratics", "A")
	quiz, _ := seedQuiz(t, db, 1, q1)

	_, err := svc.GetQuizForUser(quiz.ID, 2)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestGradeScoresAndCompletesQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	q1 := seedQuestion(t, db, "q-01", "quadratics", "A")
	q2 := seedQuestion(t, db, "q-02", "quadratics", "B")
	q3 := seedQuestion(t, db, "q-03", "linear-equations", "C")
	q4 := seedQuestion(t, db, "q-04", "linear-equations", "D")
	quiz, questions := seedQuiz(t, db, 1, q1, q2, q3, q4)

	result, err := svc.Grade(quiz.ID, 1, answerAll(questions, 2))
	require.NoError(t, err)
	assert.Equal(t, 75.0, result.Score)
	assert.Equal(t, 3, result.CorrectCount)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, []string{q3.ID}, result.MissedCanonicalQuestionIDs)

	var stored model.Quiz
	require.NoError(t, db.First(&stored, "id = ?", quiz.ID).Error)
	assert.Equal(t, model.QuizCompleted, stored.Status)
	assert.Equal(t, 75.0, stored.Score)

	var answerRows []model.AnswerResult
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Find(&answerRows).Error)
	require.Len(t, answerRows, 4)
	incorrect := 0
	for _, row := range answerRows {
		assert.Equal(t, uint(1), row.UserID)
		if !row.IsCorrect {
			incorrect++
		}
	}
	assert.Equal(t, 1, incorrect)
}

func TestGradeRoundsScoreToOneDecimal(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	q1 := seedQuestion(t, db, "q-01", "quadratics", "A")
	q2 := seedQuestion(t, db, "q-02", "quadratics", "B")
	q3 := seedQuestion(t, db, "q-03", "quadratics", "C")
	quiz, questions := seedQuiz(t, db, 1, q1, q2, q3)

	result, err := svc.Grade(quiz.ID, 1, answerAll(questions, 0))
	require.NoError(t, err)
	assert.Equal(t, 66.7, result.Score)
}

func TestGradeRejectsSecondSubmission(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	q1 := seedQuestion(t, db, "q-01", "quadratics", "A")
	quiz, questions := seedQuiz(t, db, 1, q1)

	_, err := svc.Grade(quiz.ID, 1, answerAll(questions))
	require.NoError(t, err)

	_, err = svc.Grade(quiz.ID, 1, answerAll(questions))
	assert.ErrorIs(t, err, util.ErrQuizAlreadyGraded)

	var count int64
	require.NoError(t, db.Model(&model.AnswerResult{}).Where("quiz_id = ?", quiz.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "the rejected submission must not add answer rows")
}

func TestGradeRequiresCompleteSubmission(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	q1 := seedQuestion(t, db, "q-01", "quadratics", "A")
	q2 := seedQuestion(t, db, "q-02", "quadratics", "B")
	quiz, questions := seedQuiz(t, db, 1, q1, q2)

	partial := answerAll(questions)
	delete(partial, questions[1].ID)

	_, err := svc.Grade(quiz.ID, 1, partial)
	assert.ErrorIs(t, err, util.ErrIncompleteSubmission)

	// wrong key set with matching size fails the same way
	mismatched := answerAll(questions)
	delete(mismatched, questions[1].ID)
	mismatched["not-a-question"] = "whatever"
	_, err = svc.Grade(quiz.ID, 1, mismatched)
	assert.ErrorIs(t, err, util.ErrIncompleteSubmission)

	var stored model.Quiz
	require.NoError(t, db.First(&stored, "id = ?", quiz.ID).Error)
	assert.Equal(t, model.QuizPending, stored.Status, "a rejected submission must leave the quiz pending")

	var count int64
	require.NoError(t, db.Model(&model.AnswerResult{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGradeSkipsQuestionWithBrokenCanonicalJoin(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	good := seedQuestion(t, db, "q-01", "quadratics", "A")
	quiz := &model.Quiz{UserID: 1, Status: model.QuizPending}
	questions := []model.QuizQuestion{
		{CanonicalQuestionID: good.ID, Order: 1},
		{CanonicalQuestionID: "q-deleted", Order: 2}, // no canonical row behind it
	}
	repo := repository.NewQuizRepository(db)
	require.NoError(t, repo.CreateWithQuestions(quiz, questions))

	loaded, err := repo.FindQuestions(quiz.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	answers := map[string]string{
		loaded[0].ID: good.CorrectOptionID,
		loaded[1].ID: "whatever",
	}

	result, err := svc.Grade(quiz.ID, 1, answers)
	require.NoError(t, err)

	// the broken question is skipped, not auto-failed, but still counts in the total
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Empty(t, result.MissedCanonicalQuestionIDs)
	assert.Equal(t, 50.0, result.Score)

	var answerRows []model.AnswerResult
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Find(&answerRows).Error)
	require.Len(t, answerRows, 1)
	assert.Equal(t, loaded[0].ID, answerRows[0].QuizQuestionID)

	var stored model.Quiz
	require.NoError(t, db.First(&stored, "id = ?", quiz.ID).Error)
	assert.Equal(t, model.QuizCompleted, stored.Status)
}

func TestGradeUnknownQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	_, err := svc.Grade("no-such-quiz", 1, map[string]string{"a": "b"})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestListHomeworkNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	q1 := seedQuestion(t, db, "q-01", "quadratics", "A")
	q2 := seedQuestion(t, db, "q-02", "quadratics", "B")
	first, _ := seedQuiz(t, db, 1, q1)
	second, _ := seedQuiz(t, db, 1, q1, q2)
	seedQuiz(t, db, 2, q1) // another student's quiz must not leak

	items, err := svc.ListHomework(1)
	require.NoError(t, err)
	require.Len(t, items, 2)

	found := map[string]HomeworkItem{}
	for _, item := range items {
		found[item.QuizID] = item
	}
	require.Contains(t, found, first.ID)
	require.Contains(t, found, second.ID)
	assert.Equal(t, int64(1), found[first.ID].QuestionCount)
	assert.Equal(t, int64(2), found[second.ID].QuestionCount)
	assert.Equal(t, model.QuizPending, found[first.ID].Status)
}
