package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"
	"github.com/Sivtheng/LiftNote-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes with the same contracts as the mongo
// implementations: sentinel errors, unique constraints, CAS updates and
// monotonic order sequences.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	user.ID = id
	r.users[id] = *user
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := user
	return &u, nil
}

type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises map[primitive.ObjectID]domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	exercise.ID = id
	r.exercises[id] = *exercise
	return id, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e := exercise
	return &e, nil
}

func (r *fakeExerciseRepo) GetByCreatorID(_ context.Context, creatorID primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Exercise
	for _, exercise := range r.exercises {
		if exercise.CreatorID == creatorID {
			out = append(out, exercise)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	r.exercises[exercise.ID] = *exercise
	return nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

type fakeProgramRepo struct {
	mu       sync.Mutex
	programs map[primitive.ObjectID]*domain.Program
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: make(map[primitive.ObjectID]*domain.Program)}
}

func (r *fakeProgramRepo) Create(_ context.Context, program *domain.Program) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *program
	stored.ID = id
	stored.CreatedAt = time.Now().UTC()
	r.programs[id] = &stored
	return id, nil
}

func (r *fakeProgramRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	program, ok := r.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := *program
	return &p, nil
}

func (r *fakeProgramRepo) GetByClientID(_ context.Context, clientID primitive.ObjectID) ([]domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Program
	for _, program := range r.programs {
		if program.ClientID == clientID {
			out = append(out, *program)
		}
	}
	return out, nil
}

func (r *fakeProgramRepo) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Program
	for _, program := range r.programs {
		if program.CoachID == coachID {
			out = append(out, *program)
		}
	}
	return out, nil
}

func (r *fakeProgramRepo) NextWeekOrder(_ context.Context, programID primitive.ObjectID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	program, ok := r.programs[programID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	program.WeekSeq++
	return program.WeekSeq, nil
}

func (r *fakeProgramRepo) SetPointer(_ context.Context, programID, weekID, dayID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	program, ok := r.programs[programID]
	if !ok {
		return repository.ErrNotFound
	}
	program.CurrentWeekID = &weekID
	program.CurrentDayID = &dayID
	return nil
}

func (r *fakeProgramRepo) IncrementCompletedWeeks(_ context.Context, programID primitive.ObjectID) (*domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	program, ok := r.programs[programID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if program.CompletedWeeks < program.TotalWeeks {
		program.CompletedWeeks++
	}
	p := *program
	return &p, nil
}

func (r *fakeProgramRepo) ClearPointerForWeek(_ context.Context, programID, weekID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	program, ok := r.programs[programID]
	if !ok {
		return nil
	}
	if program.CurrentWeekID != nil && *program.CurrentWeekID == weekID {
		program.CurrentWeekID = nil
		program.CurrentDayID = nil
	}
	return nil
}

func (r *fakeProgramRepo) ClearPointerForDay(_ context.Context, programID, dayID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	program, ok := r.programs[programID]
	if !ok {
		return nil
	}
	if program.CurrentDayID != nil && *program.CurrentDayID == dayID {
		program.CurrentWeekID = nil
		program.CurrentDayID = nil
	}
	return nil
}

func (r *fakeProgramRepo) UpdateStatus(_ context.Context, programID primitive.ObjectID, from, to domain.ProgramStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	program, ok := r.programs[programID]
	if !ok || program.Status != from {
		return repository.ErrNotFound
	}
	program.Status = to
	return nil
}

func (r *fakeProgramRepo) Delete(_ context.Context, programID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.programs[programID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.programs, programID)
	return nil
}

type fakeWeekRepo struct {
	mu    sync.Mutex
	weeks []domain.ProgramWeek
	// forceDuplicates makes the next N Create calls fail with ErrDuplicate,
	// simulating concurrent (programId, order) collisions.
	forceDuplicates int
	daySeqs         map[primitive.ObjectID]int
}

func newFakeWeekRepo() *fakeWeekRepo {
	return &fakeWeekRepo{daySeqs: make(map[primitive.ObjectID]int)}
}

func (r *fakeWeekRepo) Create(_ context.Context, week *domain.ProgramWeek) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forceDuplicates > 0 {
		r.forceDuplicates--
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	for _, existing := range r.weeks {
		if existing.ProgramID == week.ProgramID && existing.Order == week.Order {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	week.ID = id
	r.weeks = append(r.weeks, *week)
	return id, nil
}

func (r *fakeWeekRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ProgramWeek, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, week := range r.weeks {
		if week.ID == id {
			w := week
			return &w, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWeekRepo) GetByProgramID(_ context.Context, programID primitive.ObjectID) ([]domain.ProgramWeek, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ProgramWeek
	for _, week := range r.weeks {
		if week.ProgramID == programID {
			out = append(out, week)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeWeekRepo) NextAfter(_ context.Context, programID primitive.ObjectID, order int) (*domain.ProgramWeek, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var next *domain.ProgramWeek
	for i := range r.weeks {
		week := r.weeks[i]
		if week.ProgramID != programID || week.Order <= order {
			continue
		}
		if next == nil || week.Order < next.Order {
			w := week
			next = &w
		}
	}
	if next == nil {
		return nil, repository.ErrNotFound
	}
	return next, nil
}

func (r *fakeWeekRepo) NextDayOrder(_ context.Context, weekID primitive.ObjectID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := false
	for _, week := range r.weeks {
		if week.ID == weekID {
			found = true
			break
		}
	}
	if !found {
		return 0, repository.ErrNotFound
	}
	r.daySeqs[weekID]++
	return r.daySeqs[weekID], nil
}

func (r *fakeWeekRepo) Delete(_ context.Context, id, programID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, week := range r.weeks {
		if week.ID == id && week.ProgramID == programID {
			r.weeks = append(r.weeks[:i], r.weeks[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeWeekRepo) DeleteByProgramID(_ context.Context, programID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.weeks[:0]
	for _, week := range r.weeks {
		if week.ProgramID != programID {
			kept = append(kept, week)
		}
	}
	r.weeks = kept
	return nil
}

type fakeDayRepo struct {
	mu   sync.Mutex
	days []domain.ProgramDay
}

func newFakeDayRepo() *fakeDayRepo { return &fakeDayRepo{} }

func (r *fakeDayRepo) Create(_ context.Context, day *domain.ProgramDay) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.days {
		if existing.WeekID == day.WeekID && existing.Order == day.Order {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	day.ID = id
	r.days = append(r.days, *day)
	return id, nil
}

func (r *fakeDayRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ProgramDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, day := range r.days {
		if day.ID == id {
			d := day
			return &d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDayRepo) GetByWeekID(_ context.Context, weekID primitive.ObjectID) ([]domain.ProgramDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ProgramDay
	for _, day := range r.days {
		if day.WeekID == weekID {
			out = append(out, day)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeDayRepo) FirstByWeekID(_ context.Context, weekID primitive.ObjectID) (*domain.ProgramDay, error) {
	days, _ := r.GetByWeekID(context.Background(), weekID)
	if len(days) == 0 {
		return nil, repository.ErrNotFound
	}
	return &days[0], nil
}

func (r *fakeDayRepo) Delete(_ context.Context, id, weekID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, day := range r.days {
		if day.ID == id && day.WeekID == weekID {
			r.days = append(r.days[:i], r.days[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeDayRepo) DeleteByWeekID(_ context.Context, weekID primitive.ObjectID) ([]primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted []primitive.ObjectID
	kept := r.days[:0]
	for _, day := range r.days {
		if day.WeekID == weekID {
			deleted = append(deleted, day.ID)
		} else {
			kept = append(kept, day)
		}
	}
	r.days = kept
	return deleted, nil
}

func (r *fakeDayRepo) DeleteByProgramID(_ context.Context, programID primitive.ObjectID) ([]primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted []primitive.ObjectID
	kept := r.days[:0]
	for _, day := range r.days {
		if day.ProgramID == programID {
			deleted = append(deleted, day.ID)
		} else {
			kept = append(kept, day)
		}
	}
	r.days = kept
	return deleted, nil
}

type fakeDayExerciseRepo struct {
	mu          sync.Mutex
	assignments []domain.DayExercise
}

func newFakeDayExerciseRepo() *fakeDayExerciseRepo { return &fakeDayExerciseRepo{} }

func (r *fakeDayExerciseRepo) Upsert(_ context.Context, assignment *domain.DayExercise) (*domain.DayExercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.assignments {
		if existing.DayID == assignment.DayID && existing.ExerciseID == assignment.ExerciseID {
			r.assignments[i].Targets = assignment.Targets
			a := r.assignments[i]
			return &a, nil
		}
	}
	assignment.ID = primitive.NewObjectID()
	r.assignments = append(r.assignments, *assignment)
	a := *assignment
	return &a, nil
}

func (r *fakeDayExerciseRepo) GetByDayAndExercise(_ context.Context, dayID, exerciseID primitive.ObjectID) (*domain.DayExercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, assignment := range r.assignments {
		if assignment.DayID == dayID && assignment.ExerciseID == exerciseID {
			a := assignment
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDayExerciseRepo) GetByDayID(_ context.Context, dayID primitive.ObjectID) ([]domain.DayExercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.DayExercise
	for _, assignment := range r.assignments {
		if assignment.DayID == dayID {
			out = append(out, assignment)
		}
	}
	return out, nil
}

func (r *fakeDayExerciseRepo) Delete(_ context.Context, dayID, exerciseID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, assignment := range r.assignments {
		if assignment.DayID == dayID && assignment.ExerciseID == exerciseID {
			r.assignments = append(r.assignments[:i], r.assignments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeDayExerciseRepo) DeleteByDayIDs(_ context.Context, dayIDs []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[primitive.ObjectID]bool, len(dayIDs))
	for _, id := range dayIDs {
		ids[id] = true
	}
	kept := r.assignments[:0]
	for _, assignment := range r.assignments {
		if !ids[assignment.DayID] {
			kept = append(kept, assignment)
		}
	}
	r.assignments = kept
	return nil
}

func (r *fakeDayExerciseRepo) CountByExerciseID(_ context.Context, exerciseID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, assignment := range r.assignments {
		if assignment.ExerciseID == exerciseID {
			count++
		}
	}
	return count, nil
}

type fakeProgressLogRepo struct {
	mu   sync.Mutex
	logs []domain.ProgressLog
}

func newFakeProgressLogRepo() *fakeProgressLogRepo { return &fakeProgressLogRepo{} }

func (r *fakeProgressLogRepo) Create(_ context.Context, log *domain.ProgressLog) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	log.ID = id
	r.logs = append(r.logs, *log)
	return id, nil
}

func (r *fakeProgressLogRepo) GetByProgramID(_ context.Context, programID primitive.ObjectID) ([]domain.ProgressLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ProgressLog
	for _, log := range r.logs {
		if log.ProgramID == programID {
			out = append(out, log)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out, nil
}

func (r *fakeProgressLogRepo) GetByDay(_ context.Context, programID, weekID, dayID primitive.ObjectID) ([]domain.ProgressLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ProgressLog
	for _, log := range r.logs {
		if log.ProgramID == programID && log.WeekID == weekID && log.DayID == dayID {
			out = append(out, log)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out, nil
}

func (r *fakeProgressLogRepo) CountByExerciseID(_ context.Context, exerciseID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, log := range r.logs {
		if log.ExerciseID != nil && *log.ExerciseID == exerciseID {
			count++
		}
	}
	return count, nil
}

func (r *fakeProgressLogRepo) DeleteByProgramID(_ context.Context, programID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.logs[:0]
	for _, log := range r.logs {
		if log.ProgramID != programID {
			kept = append(kept, log)
		}
	}
	r.logs = kept
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo { return &fakeCommentRepo{} }

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	comment.ID = id
	comment.CreatedAt = time.Now().UTC()
	r.comments = append(r.comments, *comment)
	return id, nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, comment := range r.comments {
		if comment.ID == id {
			c := comment
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCommentRepo) GetTopLevelByProgramID(_ context.Context, programID primitive.ObjectID) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Comment
	for _, comment := range r.comments {
		if comment.ProgramID == programID && comment.ParentID == nil {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) GetRepliesByProgramID(_ context.Context, programID primitive.ObjectID) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Comment
	for _, comment := range r.comments {
		if comment.ProgramID == programID && comment.ParentID != nil {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) DeleteByProgramID(_ context.Context, programID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.comments[:0]
	for _, comment := range r.comments {
		if comment.ProgramID != programID {
			kept = append(kept, comment)
		}
	}
	r.comments = kept
	return nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions []domain.QuestionnaireQuestion
}

func newFakeQuestionRepo() *fakeQuestionRepo { return &fakeQuestionRepo{} }

func (r *fakeQuestionRepo) Create(_ context.Context, question *domain.QuestionnaireQuestion) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.questions {
		if existing.Key == question.Key {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	question.ID = id
	r.questions = append(r.questions, *question)
	return id, nil
}

func (r *fakeQuestionRepo) GetByKey(_ context.Context, key string) (*domain.QuestionnaireQuestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, question := range r.questions {
		if question.Key == key {
			q := question
			return &q, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeQuestionRepo) GetAll(_ context.Context) ([]domain.QuestionnaireQuestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.QuestionnaireQuestion, len(r.questions))
	copy(out, r.questions)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, question *domain.QuestionnaireQuestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.questions {
		if existing.ID == question.ID {
			r.questions[i] = *question
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.questions {
		if existing.ID == id {
			r.questions = append(r.questions[:i], r.questions[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeQuestionnaireRepo struct {
	mu             sync.Mutex
	questionnaires map[primitive.ObjectID]*domain.Questionnaire
}

func newFakeQuestionnaireRepo() *fakeQuestionnaireRepo {
	return &fakeQuestionnaireRepo{questionnaires: make(map[primitive.ObjectID]*domain.Questionnaire)}
}

func (r *fakeQuestionnaireRepo) Create(_ context.Context, questionnaire *domain.Questionnaire) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.questionnaires {
		if existing.ClientID == questionnaire.ClientID {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	stored := *questionnaire
	stored.ID = id
	stored.Answers = make(map[string]string)
	for k, v := range questionnaire.Answers {
		stored.Answers[k] = v
	}
	r.questionnaires[id] = &stored
	return id, nil
}

func (r *fakeQuestionnaireRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Questionnaire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	questionnaire, ok := r.questionnaires[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	q := *questionnaire
	return &q, nil
}

func (r *fakeQuestionnaireRepo) GetByClientID(_ context.Context, clientID primitive.ObjectID) (*domain.Questionnaire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, questionnaire := range r.questionnaires {
		if questionnaire.ClientID == clientID {
			q := *questionnaire
			return &q, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeQuestionnaireRepo) SetAnswer(_ context.Context, id primitive.ObjectID, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	questionnaire, ok := r.questionnaires[id]
	if !ok || questionnaire.Status != domain.QuestionnairePending {
		return repository.ErrNotFound
	}
	questionnaire.Answers[key] = value
	return nil
}

func (r *fakeQuestionnaireRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to domain.QuestionnaireStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	questionnaire, ok := r.questionnaires[id]
	if !ok || questionnaire.Status != from {
		return repository.ErrNotFound
	}
	questionnaire.Status = to
	return nil
}
