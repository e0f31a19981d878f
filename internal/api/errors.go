package api

import (
	"errors"
	"net/http"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"
	"github.com/Sivtheng/LiftNote-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps service and domain errors to HTTP responses so that
// handlers do not repeat the same switch. Unrecognized errors become 500s with
// a generic message; the underlying error is left to the logging middleware.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrQuestionnaireExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidClient),
		errors.Is(err, domain.ErrInvalidSpecification),
		errors.Is(err, domain.ErrUnassignedExercise),
		errors.Is(err, domain.ErrEmptyLog),
		errors.Is(err, domain.ErrRestDayMeasurements),
		errors.Is(err, domain.ErrInvalidTimestamp),
		errors.Is(err, domain.ErrInvalidThread),
		errors.Is(err, domain.ErrUnknownQuestionKey),
		errors.Is(err, domain.ErrIncompleteAnswers),
		errors.Is(err, service.ErrEmptyComment):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrNotCoach),
		errors.Is(err, service.ErrExerciseAccessDenied),
		errors.Is(err, service.ErrLogAccessDenied),
		errors.Is(err, service.ErrCommentAccessDenied),
		errors.Is(err, service.ErrQuestionnaireAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An internal error occurred")
	}
}
