package service

import (
	"context"
	"sat_tutor_backend/internal/model"
	"sat_tutor_backend/internal/repository"
	"sat_tutor_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRemediationService(db *gorm.DB) *RemediationService {
	return NewRemediationService(
		repository.NewQuestionRepository(db),
		repository.NewMasteryRepository(db),
		nil, // cache disabled in tests
		FollowUpLimit,
	)
}

func TestResolveCapsFollowUpsAndExcludesSelf(t *testing.T) {
	db := newTestDB(t)
	svc := newRemediationService(db)

	missed := seedQuestion(t, db, "q-quad-1", "quadratics", "A")
	seedQuestion(t, db, "q-quad-2", "quadratics", "B")
	seedQuestion(t, db, "q-quad-3", "quadratics", "C")
	seedQuestion(t, db, "q-quad-4", "quadratics", "D")
	seedQuestion(t, db, "q-quad-5", "quadratics", "A")
	seedQuestion(t, db, "q-linear-1", "linear-equations", "A")

	items, err := svc.Resolve(context.Background(), []string{missed.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, missed.ID, item.MissedQuestionID)
	assert.Equal(t, "quadratics", item.ConceptTag)
	require.Len(t, item.FollowUpQuestions, FollowUpLimit)

	// deterministic id order, never the missed question itself
	assert.Equal(t, "q-quad-2", item.FollowUpQuestions[0].ID)
	assert.Equal(t, "q-quad-3", item.FollowUpQuestions[1].ID)
	assert.Equal(t, "q-quad-4", item.FollowUpQuestions[2].ID)
	for _, fq := range item.FollowUpQuestions {
		assert.NotEqual(t, missed.ID, fq.ID)
		assert.Len(t, fq.Options, 4)
	}
}

func TestResolveWithoutConceptTag(t *testing.T) {
	db := newTestDB(t)
	svc := newRemediationService(db)

	missed := seedQuestion(t, db, "q-untagged", "", "A")
	seedQuestion(t, db, "q-quad-1", "quadratics", "B")

	items, err := svc.Resolve(context.Background(), []string{missed.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].FollowUpQuestions)
}

func TestResolveUnknownIDs(t *testing.T) {
	db := newTestDB(t)
	svc := newRemediationService(db)

	_, err := svc.Resolve(context.Background(), []string{"no-such-question"})
	assert.ErrorIs(t, err, util.ErrQuestionsNotFound)
}

func TestResolvePartiallyUnknownIDs(t *testing.T) {
	db := newTestDB(t)
	svc := newRemediationService(db)

	missed := seedQuestion(t, db, "q-quad-1", "quadratics", "A")

	items, err := svc.Resolve(context.Background(), []string{missed.ID, "no-such-question"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, missed.ID, items[0].MissedQuestionID)
}

func TestGradeFollowUpRecordsMasteryAtThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newRemediationService(db)

	missed := seedQuestion(t, db, "q-quad-1", "quadratics", "A")
	f1 := seedQuestion(t, db, "q-quad-2", "quadratics", "B")
	f2 := seedQuestion(t, db, "q-quad-3", "quadratics", "C")
	f3 := seedQuestion(t, db, "q-quad-4", "quadratics", "D")

	answers := map[string]string{
		f1.ID: f1.CorrectOptionID,
		f2.ID: f2.CorrectOptionID,
		f3.ID: f3.Options[0].ID, // wrong
	}

	result, err := svc.GradeFollowUp(1, missed.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 2, result.CorrectCount)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.True(t, result.Mastered)

	var row model.UserSkillMastery
	require.NoError(t, db.Where("user_id = ? AND concept_tag = ?", 1, "quadratics").First(&row).Error)
	assert.Equal(t, model.MasteryMastered, row.Status)
	assert.False(t, row.LastUpdated.IsZero())
}

func TestGradeFollowUpBelowThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newRemediationService(db)

	missed := seedQuestion(t, db, "q-quad-1", "quadratics", "A")
	f1 := seedQuestion(t, db, "q-quad-2", "quadratics", "B")
	f2 := seedQuestion(t, db, "q-quad-3", "quadratics", "C")

	answers := map[string]string{
		f1.ID: f1.CorrectOptionID,
		f2.ID: f2.Options[0].ID, // wrong
	}

	result, err := svc.GradeFollowUp(1, missed.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectCount)
	assert.False(t, result.Mastered)

	var count int64
	require.NoError(t, db.Model(&model.UserSkillMastery{}).Count(&count).Error)
	assert.Zero(t, count, "no mastery row below the threshold")
}

func TestGradeFollowUpRejectsUnknownQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newRemediationService(db)

	missed := seedQuestion(t, db, "q-quad-1", "quadratics", "A")
	f1 := seedQuestion(t, db, "q-quad-2", "quadratics", "B")

	answers := map[string]string{
		f1.ID:            f1.CorrectOptionID,
		"not-a-question": "whatever",
	}

	_, err := svc.GradeFollowUp(1, missed.ID, answers)
	assert.ErrorIs(t, err, util.ErrUnverifiedQuestions)
}

func TestGradeFollowUpUpsertKeepsSingleRow(t *testing.T) {
	db := newTestDB(t)
	svc := newRemediationService(db)

	missed := seedQuestion(t, db, "q-quad-1", "quadratics", "A")
	f1 := seedQuestion(t, db, "q-quad-2", "quadratics", "B")
	f2 := seedQuestion(t, db, "q-quad-3", "quadratics", "C")

	answers := map[string]string{
		f1.ID: f1.CorrectOptionID,
		f2.ID: f2.CorrectOptionID,
	}

	_, err := svc.GradeFollowUp(1, missed.ID, answers)
	require.NoError(t, err)
	_, err = svc.GradeFollowUp(1, missed.ID, answers)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.UserSkillMastery{}).
		Where("user_id = ? AND concept_tag = ?", 1, "quadratics").Count(&count).Error)
	assert.Equal(t, int64(1), count, "repeat mastery must update in place")
}
