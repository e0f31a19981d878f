package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionType for questionnaire catalog questions.
type QuestionType string

const (
	QuestionText   QuestionType = "text"
	QuestionNumber QuestionType = "number"
	QuestionSelect QuestionType = "select"
)

// QuestionnaireQuestion is one catalog question. Key is the stable
// identifier used inside every questionnaire's answers map.
type QuestionnaireQuestion struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key        string             `bson:"key" json:"key"` // unique
	Question   string             `bson:"question" json:"question"`
	Type       QuestionType       `bson:"type" json:"type"`
	Options    []string           `bson:"options,omitempty" json:"options,omitempty"`
	IsRequired bool               `bson:"isRequired" json:"isRequired"`
	Order      int                `bson:"order" json:"order"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// QuestionnaireStatus type for the questionnaire lifecycle. Completed and
// reviewed are terminal for editing answers.
type QuestionnaireStatus string

const (
	QuestionnairePending   QuestionnaireStatus = "pending"
	QuestionnaireCompleted QuestionnaireStatus = "completed"
	QuestionnaireReviewed  QuestionnaireStatus = "reviewed"
)

// Questionnaire is one client's Q&A instance. Questions holds the catalog
// snapshot taken at creation time; Answers is keyed by question key.
type Questionnaire struct {
	ID        primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	ClientID  primitive.ObjectID      `bson:"clientId" json:"clientId"`
	ProgramID *primitive.ObjectID     `bson:"programId,omitempty" json:"programId,omitempty"`
	Questions []QuestionnaireQuestion `bson:"questions" json:"questions"`
	Answers   map[string]string       `bson:"answers" json:"answers"`
	Status    QuestionnaireStatus     `bson:"status" json:"status"`
	CreatedAt time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time               `bson:"updatedAt" json:"updatedAt"`
}
