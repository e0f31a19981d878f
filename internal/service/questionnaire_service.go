package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"
	"github.com/Sivtheng/LiftNote-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrQuestionnaireExists       = errors.New("client already has a questionnaire")
	ErrQuestionnaireAccessDenied = errors.New("questionnaire belongs to another client")
)

// QuestionnaireService owns the question catalog and per-client answer sets.
type QuestionnaireService interface {
	// Catalog management (coach/admin side).
	AddQuestion(ctx context.Context, question *domain.QuestionnaireQuestion) (*domain.QuestionnaireQuestion, error)
	UpdateQuestion(ctx context.Context, question *domain.QuestionnaireQuestion) error
	DeleteQuestion(ctx context.Context, questionID primitive.ObjectID) error
	Questions(ctx context.Context) ([]domain.QuestionnaireQuestion, error)

	// Client instances.
	CreateQuestionnaire(ctx context.Context, clientID primitive.ObjectID, programID *primitive.ObjectID) (*domain.Questionnaire, error)
	GetForClient(ctx context.Context, clientID primitive.ObjectID) (*domain.Questionnaire, error)
	// UpsertAnswer and Submit act on behalf of actorID, which must be the
	// questionnaire's owning client (admins may act for any client).
	UpsertAnswer(ctx context.Context, questionnaireID, actorID primitive.ObjectID, key, value string) error
	Submit(ctx context.Context, questionnaireID, actorID primitive.ObjectID) error
	Review(ctx context.Context, questionnaireID, coachID primitive.ObjectID) error
}

// questionnaireService implements the QuestionnaireService interface.
type questionnaireService struct {
	questionRepo      repository.QuestionRepository
	questionnaireRepo repository.QuestionnaireRepository
	userRepo          repository.UserRepository
}

// NewQuestionnaireService creates a new instance of questionnaireService.
func NewQuestionnaireService(
	questionRepo repository.QuestionRepository,
	questionnaireRepo repository.QuestionnaireRepository,
	userRepo repository.UserRepository,
) QuestionnaireService {
	return &questionnaireService{
		questionRepo:      questionRepo,
		questionnaireRepo: questionnaireRepo,
		userRepo:          userRepo,
	}
}

// AddQuestion inserts a catalog question with a unique stable key.
func (s *questionnaireService) AddQuestion(ctx context.Context, question *domain.QuestionnaireQuestion) (*domain.QuestionnaireQuestion, error) {
	if question.Key == "" || question.Question == "" {
		return nil, errors.New("question key and text are required")
	}
	questionID, err := s.questionRepo.Create(ctx, question)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: key %q already exists", domain.ErrConflict, question.Key)
		}
		return nil, err
	}
	question.ID = questionID
	return question, nil
}

// UpdateQuestion rewrites a catalog question's mutable fields.
func (s *questionnaireService) UpdateQuestion(ctx context.Context, question *domain.QuestionnaireQuestion) error {
	err := s.questionRepo.Update(ctx, question)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: question %s", domain.ErrNotFound, question.ID.Hex())
	}
	return err
}

// DeleteQuestion removes a catalog question.
func (s *questionnaireService) DeleteQuestion(ctx context.Context, questionID primitive.ObjectID) error {
	err := s.questionRepo.Delete(ctx, questionID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: question %s", domain.ErrNotFound, questionID.Hex())
	}
	return err
}

// Questions returns the catalog in display order.
func (s *questionnaireService) Questions(ctx context.Context) ([]domain.QuestionnaireQuestion, error) {
	return s.questionRepo.GetAll(ctx)
}

// CreateQuestionnaire creates the single pending questionnaire for a client,
// snapshotting the current catalog.
func (s *questionnaireService) CreateQuestionnaire(ctx context.Context, clientID primitive.ObjectID, programID *primitive.ObjectID) (*domain.Questionnaire, error) {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: client %s does not exist", domain.ErrInvalidClient, clientID.Hex())
		}
		return nil, err
	}
	if !client.IsClient() {
		return nil, fmt.Errorf("%w: user %s has role %s", domain.ErrInvalidClient, clientID.Hex(), client.Role)
	}

	questions, err := s.questionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	questionnaire := &domain.Questionnaire{
		ClientID:  clientID,
		ProgramID: programID,
		Questions: questions,
		Answers:   map[string]string{},
		Status:    domain.QuestionnairePending,
	}
	questionnaireID, err := s.questionnaireRepo.Create(ctx, questionnaire)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrQuestionnaireExists
		}
		return nil, err
	}
	questionnaire.ID = questionnaireID
	return questionnaire, nil
}

// GetForClient retrieves a client's questionnaire.
func (s *questionnaireService) GetForClient(ctx context.Context, clientID primitive.ObjectID) (*domain.Questionnaire, error) {
	questionnaire, err := s.questionnaireRepo.GetByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no questionnaire for client %s", domain.ErrNotFound, clientID.Hex())
		}
		return nil, err
	}
	return questionnaire, nil
}

// getOwned loads a questionnaire and verifies the actor may mutate it: the
// owning client, or an admin acting on the client's behalf.
func (s *questionnaireService) getOwned(ctx context.Context, questionnaireID, actorID primitive.ObjectID) (*domain.Questionnaire, error) {
	questionnaire, err := s.questionnaireRepo.GetByID(ctx, questionnaireID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: questionnaire %s", domain.ErrNotFound, questionnaireID.Hex())
		}
		return nil, err
	}
	if questionnaire.ClientID == actorID {
		return questionnaire, nil
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err == nil && actor.IsAdmin() {
		return questionnaire, nil
	}
	return nil, ErrQuestionnaireAccessDenied
}

// UpsertAnswer writes one keyed answer, validated against the live catalog.
func (s *questionnaireService) UpsertAnswer(ctx context.Context, questionnaireID, actorID primitive.ObjectID, key, value string) error {
	if _, err := s.getOwned(ctx, questionnaireID, actorID); err != nil {
		return err
	}
	if _, err := s.questionRepo.GetByKey(ctx, key); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %q", domain.ErrUnknownQuestionKey, key)
		}
		return err
	}

	err := s.questionnaireRepo.SetAnswer(ctx, questionnaireID, key, value)
	if errors.Is(err, repository.ErrNotFound) {
		// The ownership check above saw the questionnaire, so a no-match
		// here means it is no longer pending.
		return fmt.Errorf("%w: questionnaire is no longer editable", domain.ErrInvalidTransition)
	}
	return err
}

// Submit transitions pending -> completed once every required question has a
// non-empty answer.
func (s *questionnaireService) Submit(ctx context.Context, questionnaireID, actorID primitive.ObjectID) error {
	questionnaire, err := s.getOwned(ctx, questionnaireID, actorID)
	if err != nil {
		return err
	}

	questions, err := s.questionRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	var missing []string
	for _, question := range questions {
		if !question.IsRequired {
			continue
		}
		if strings.TrimSpace(questionnaire.Answers[question.Key]) == "" {
			missing = append(missing, question.Key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrIncompleteAnswers, strings.Join(missing, ", "))
	}

	err = s.questionnaireRepo.UpdateStatus(ctx, questionnaireID, domain.QuestionnairePending, domain.QuestionnaireCompleted)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: questionnaire is not pending", domain.ErrInvalidTransition)
	}
	return err
}

// Review is the coach-only transition completed -> reviewed.
func (s *questionnaireService) Review(ctx context.Context, questionnaireID, coachID primitive.ObjectID) error {
	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotCoach
		}
		return err
	}
	if !coach.IsCoach() && !coach.IsAdmin() {
		return ErrNotCoach
	}

	err = s.questionnaireRepo.UpdateStatus(ctx, questionnaireID, domain.QuestionnaireCompleted, domain.QuestionnaireReviewed)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: questionnaire is not completed", domain.ErrInvalidTransition)
	}
	return err
}
