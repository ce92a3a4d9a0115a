package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tempoaovivo/account-service/internal/service"
	"github.com/tempoaovivo/account-service/shared/middleware"
)

const internalErrorMessage = "Internal server error"

// respondWithServiceError maps the service error taxonomy onto HTTP.
// Internal failures are logged in full and answered with a generic message.
func respondWithServiceError(c *gin.Context, log logrus.FieldLogger, err error) {
	var fieldErrs service.ValidationErrors
	switch {
	case errors.As(err, &fieldErrs):
		details := make([]middleware.ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, middleware.ValidationError{Field: fe.Field, Message: fe.Message, Type: fe.Tag})
		}
		middleware.RespondWithValidationError(c, details)
	case errors.Is(err, service.ErrValidation):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		middleware.RespondWithError(c, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, service.ErrNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		middleware.RespondWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		middleware.RespondWithError(c, http.StatusForbidden, "You can only access your own profile")
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
		middleware.RespondWithError(c, http.StatusInternalServerError, internalErrorMessage)
	}
}
