package service

import (
	"fmt"
	"os"
	"sat_tutor_backend/internal/model"
	"sat_tutor_backend/pkg/logger"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

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
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.OfficialTest{},
		&model.CanonicalQuestion{},
		&model.QuestionOption{},
		&model.OfficialQuestionMapping{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.AnswerResult{},
		&model.UserSkillMastery{},
		&model.VideoLesson{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// seedQuestion inserts a canonical question with four options and returns it with
// the correct option resolved.
func seedQuestion(t *testing.T, db *gorm.DB, id, conceptTag string, correctLabel string) *model.CanonicalQuestion {
	t.Helper()

	q := model.CanonicalQuestion{
		UUIDBase:   model.UUIDBase{ID: id},
		Text:       fmt.Sprintf("question %s", id),
		ConceptTag: conceptTag,
	}
	if err := db.Create(&q).Error; err != nil {
		t.Fatalf("failed to seed question %s: %v", id, err)
	}

	labels := []string{"A", "B", "C", "D"}
	for i, label := range labels {
		opt := model.QuestionOption{
			QuestionID: q.ID,
			Label:      label,
			Text:       fmt.Sprintf("option %s for %s", label, id),
			Order:      i + 1,
		}
		if err := db.Create(&opt).Error; err != nil {
			t.Fatalf("failed to seed option %s: %v", label, err)
		}
		if label == correctLabel {
			q.CorrectOptionID = opt.ID
		}
		q.Options = append(q.Options, opt)
	}

	if err := db.Model(&model.CanonicalQuestion{}).Where("id = ?", q.ID).
		Update("correct_option_id", q.CorrectOptionID).Error; err != nil {
		t.Fatalf("failed to set correct option: %v", err)
	}
	return &q
}

func seedMapping(t *testing.T, db *gorm.DB, testID, section string, number int, canonicalID string) {
	t.Helper()

	mapping := model.OfficialQuestionMapping{
		OfficialTestID:      testID,
		Section:             section,
		QuestionNumber:      number,
		CanonicalQuestionID: canonicalID,
	}
	if err := db.Create(&mapping).Error; err != nil {
		t.Fatalf("failed to seed mapping %s/%s/%d: %v", testID, section, number, err)
	}
}
