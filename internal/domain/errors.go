package domain

import "errors"

// Validation failure kinds surfaced by the core. All of them indicate a bad
// request from the caller, never a system fault; the API layer maps each one
// to an HTTP status and a field-level message.
var (
	ErrInvalidClient        = errors.New("referenced user does not have the client role")
	ErrInvalidSpecification = errors.New("invalid target specification")
	ErrNotFound             = errors.New("entity not found")
	ErrInvalidTransition    = errors.New("invalid program transition")
	ErrUnassignedExercise   = errors.New("exercise is not assigned to this day")
	ErrEmptyLog             = errors.New("progress log has no measurements")
	ErrRestDayMeasurements  = errors.New("rest day log must not carry measurements")
	ErrInvalidTimestamp     = errors.New("completed_at must not be in the future")
	ErrInvalidThread        = errors.New("invalid comment thread parent")
	ErrUnknownQuestionKey   = errors.New("unknown questionnaire question key")
	ErrIncompleteAnswers    = errors.New("required questions are not answered")
	ErrConflict             = errors.New("conflicting concurrent write")
)
