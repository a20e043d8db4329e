package repository

import (
	"sat_tutor_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.CanonicalQuestion{},
		&model.QuestionOption{},
		&model.OfficialQuestionMapping{},
		&model.Quiz{},
		&model.QuizQuestion{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestCompleteIfPendingClaimsOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepository(db)

	quiz := &model.Quiz{UserID: 1, Status: model.QuizPending}
	require.NoError(t, db.Create(quiz).Error)

	affected, err := repo.CompleteIfPending(quiz.ID, 85.0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var stored model.Quiz
	require.NoError(t, db.First(&stored, "id = ?", quiz.ID).Error)
	assert.Equal(t, model.QuizCompleted, stored.Status)
	assert.Equal(t, 85.0, stored.Score)

	// second claim loses: zero rows, score untouched
	affected, err = repo.CompleteIfPending(quiz.ID, 10.0)
	require.NoError(t, err)
	assert.Zero(t, affected)

	require.NoError(t, db.First(&stored, "id = ?", quiz.ID).Error)
	assert.Equal(t, 85.0, stored.Score)
}

func TestCreateWithQuestionsRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepository(db)

	quiz := &model.Quiz{UserID: 1, Status: model.QuizPending}
	questions := []model.QuizQuestion{
		{CanonicalQuestionID: "q-1", Order: 1},
		{CanonicalQuestionID: "q-2", Order: 1}, // duplicate position violates the unique index
	}

	err := repo.CreateWithQuestions(quiz, questions)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Quiz{}).Count(&count).Error)
	assert.Zero(t, count, "the quiz insert must roll back with its questions")
}

func TestResolveMapping(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)

	require.NoError(t, db.Create(&model.OfficialQuestionMapping{
		OfficialTestID:      "sat-practice-1",
		Section:             "Math",
		QuestionNumber:      5,
		CanonicalQuestionID: "q-quad-1",
	}).Error)

	id, err := repo.ResolveMapping("sat-practice-1", "Math", 5)
	require.NoError(t, err)
	assert.Equal(t, "q-quad-1", id)

	_, err = repo.ResolveMapping("sat-practice-1", "Math", 6)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
