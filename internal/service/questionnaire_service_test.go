package service

import (
	"context"
	"testing"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	questions := []*domain.QuestionnaireQuestion{
		{Key: "goal", Question: "What is your training goal?", Type: domain.QuestionText, IsRequired: true, Order: 1},
		{Key: "experience", Question: "Years of training?", Type: domain.QuestionNumber, IsRequired: true, Order: 2},
		{Key: "injuries", Question: "Any current injuries?", Type: domain.QuestionText, IsRequired: false, Order: 3},
	}
	for _, question := range questions {
		_, err := f.questionnaires.AddQuestion(ctx, question)
		require.NoError(t, err)
	}
}

func TestAddQuestion_DuplicateKey(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)

	_, err := f.questionnaires.AddQuestion(context.Background(), &domain.QuestionnaireQuestion{
		Key:      "goal",
		Question: "Duplicate",
		Type:     domain.QuestionText,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateQuestionnaire_SnapshotsCatalog(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)
	ctx := context.Background()

	questionnaire, err := f.questionnaires.CreateQuestionnaire(ctx, f.client.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.QuestionnairePending, questionnaire.Status)
	assert.Len(t, questionnaire.Questions, 3)
	assert.Empty(t, questionnaire.Answers)

	// One questionnaire per client.
	_, err = f.questionnaires.CreateQuestionnaire(ctx, f.client.ID, nil)
	assert.ErrorIs(t, err, ErrQuestionnaireExists)

	// Coaches do not get questionnaires.
	_, err = f.questionnaires.CreateQuestionnaire(ctx, f.coach.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidClient)
}

func TestUpsertAnswer_UnknownKey(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)
	ctx := context.Background()

	questionnaire, err := f.questionnaires.CreateQuestionnaire(ctx, f.client.ID, nil)
	require.NoError(t, err)

	err = f.questionnaires.UpsertAnswer(ctx, questionnaire.ID, f.client.ID, "favorite_color", "blue")
	assert.ErrorIs(t, err, domain.ErrUnknownQuestionKey)
}

func TestUpsertAnswer_OwnershipEnforced(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)
	ctx := context.Background()

	questionnaire, err := f.questionnaires.CreateQuestionnaire(ctx, f.client.ID, nil)
	require.NoError(t, err)

	// Another client cannot touch it, even with a valid question key.
	stranger := f.addUser(t, "Other Client", "other@liftnote.test", domain.RoleClient)
	err = f.questionnaires.UpsertAnswer(ctx, questionnaire.ID, stranger.ID, "goal", "hijacked")
	assert.ErrorIs(t, err, ErrQuestionnaireAccessDenied)
	err = f.questionnaires.Submit(ctx, questionnaire.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrQuestionnaireAccessDenied)

	got, err := f.questionnaires.GetForClient(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Answers)
	assert.Equal(t, domain.QuestionnairePending, got.Status)

	// Admins may act on the client's behalf.
	admin := f.addUser(t, "Admin", "admin@liftnote.test", domain.RoleAdmin)
	require.NoError(t, f.questionnaires.UpsertAnswer(ctx, questionnaire.ID, admin.ID, "goal", "strength"))
	require.NoError(t, f.questionnaires.UpsertAnswer(ctx, questionnaire.ID, admin.ID, "experience", "2"))
	require.NoError(t, f.questionnaires.Submit(ctx, questionnaire.ID, admin.ID))
}

func TestSubmit_RequiresAllRequiredAnswers(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)
	ctx := context.Background()

	questionnaire, err := f.questionnaires.CreateQuestionnaire(ctx, f.client.ID, nil)
	require.NoError(t, err)

	// Nothing answered.
	err = f.questionnaires.Submit(ctx, questionnaire.ID, f.client.ID)
	assert.ErrorIs(t, err, domain.ErrIncompleteAnswers)

	// Whitespace does not count as an answer.
	require.NoError(t, f.questionnaires.UpsertAnswer(ctx, questionnaire.ID, f.client.ID, "goal", "get strong"))
	require.NoError(t, f.questionnaires.UpsertAnswer(ctx, questionnaire.ID, f.client.ID, "experience", "   "))
	err = f.questionnaires.Submit(ctx, questionnaire.ID, f.client.ID)
	assert.ErrorIs(t, err, domain.ErrIncompleteAnswers)

	// The optional question may stay empty.
	require.NoError(t, f.questionnaires.UpsertAnswer(ctx, questionnaire.ID, f.client.ID, "experience", "3"))
	require.NoError(t, f.questionnaires.Submit(ctx, questionnaire.ID, f.client.ID))

	got, err := f.questionnaires.GetForClient(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuestionnaireCompleted, got.Status)

	// Completed questionnaires are frozen.
	err = f.questionnaires.UpsertAnswer(ctx, questionnaire.ID, f.client.ID, "goal", "changed my mind")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	err = f.questionnaires.Submit(ctx, questionnaire.ID, f.client.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReview_Lifecycle(t *testing.T) {
	f := newFixture(t)
	seedCatalog(t, f)
	ctx := context.Background()

	questionnaire, err := f.questionnaires.CreateQuestionnaire(ctx, f.client.ID, nil)
	require.NoError(t, err)

	// Cannot review a pending questionnaire.
	err = f.questionnaires.Review(ctx, questionnaire.ID, f.coach.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	require.NoError(t, f.questionnaires.UpsertAnswer(ctx, questionnaire.ID, f.client.ID, "goal", "hypertrophy"))
	require.NoError(t, f.questionnaires.UpsertAnswer(ctx, questionnaire.ID, f.client.ID, "experience", "5"))
	require.NoError(t, f.questionnaires.Submit(ctx, questionnaire.ID, f.client.ID))

	// Clients cannot review.
	err = f.questionnaires.Review(ctx, questionnaire.ID, f.client.ID)
	assert.ErrorIs(t, err, ErrNotCoach)

	require.NoError(t, f.questionnaires.Review(ctx, questionnaire.ID, f.coach.ID))
	got, err := f.questionnaires.GetForClient(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuestionnaireReviewed, got.Status)

	// Reviewed is terminal.
	err = f.questionnaires.Review(ctx, questionnaire.ID, f.coach.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
