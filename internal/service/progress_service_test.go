package service

import (
	"sat_tutor_backend/internal/model"
	"sat_tutor_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProgressService(db *gorm.DB) *ProgressService {
	return NewProgressService(
		repository.NewMasteryRepository(db),
		repository.NewQuizRepository(db),
	)
}

func TestSummaryAggregatesQuizzesAndSkills(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)

	require.NoError(t, db.Create(&model.Quiz{UserID: 1, Status: model.QuizCompleted, Score: 80}).Error)
	require.NoError(t, db.Create(&model.Quiz{UserID: 1, Status: model.QuizCompleted, Score: 60}).Error)
	require.NoError(t, db.Create(&model.Quiz{UserID: 1, Status: model.QuizPending}).Error)
	require.NoError(t, db.Create(&model.Quiz{UserID: 2, Status: model.QuizCompleted, Score: 100}).Error)

	require.NoError(t, db.Create(&model.UserSkillMastery{
		UserID: 1, ConceptTag: "quadratics", Status: model.MasteryMastered, LastUpdated: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&model.UserSkillMastery{
		UserID: 1, ConceptTag: "linear-equations", Status: model.MasteryNeedsPractice, LastUpdated: time.Now(),
	}).Error)

	summary, err := svc.Summary(1)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalQuizzes)
	assert.Equal(t, 2, summary.CompletedQuizzes)
	assert.Equal(t, 70.0, summary.AverageScore)
	assert.Equal(t, 1, summary.ConceptsMastered)
	assert.Equal(t, 2, summary.ConceptsTracked)
}

func TestSummaryEmptyUser(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)

	summary, err := svc.Summary(42)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalQuizzes)
	assert.Zero(t, summary.AverageScore)
}

func TestSkillBreakdownSortedByConcept(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)

	require.NoError(t, db.Create(&model.UserSkillMastery{
		UserID: 1, ConceptTag: "rhetorical-synthesis", Status: model.MasteryMastered, LastUpdated: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&model.UserSkillMastery{
		UserID: 1, ConceptTag: "quadratics", Status: model.MasteryProficient, LastUpdated: time.Now(),
	}).Error)

	skills, err := svc.SkillBreakdown(1)
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "quadratics", skills[0].ConceptTag)
	assert.Equal(t, "rhetorical-synthesis", skills[1].ConceptTag)
}
