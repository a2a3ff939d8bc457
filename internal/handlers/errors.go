package handlers

import (
	"errors"
	"net/http"

	"clinic-scheduling-server/internal/middleware"
	"clinic-scheduling-server/internal/services"
	"clinic-scheduling-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type errorMapping struct {
	kind   error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{services.ErrValidation, http.StatusBadRequest, utils.CodeValidationError},
	{services.ErrNotFound, http.StatusNotFound, utils.CodeNotFound},
	{services.ErrInactive, http.StatusBadRequest, utils.CodeInactive},
	{services.ErrInvalidTime, http.StatusBadRequest, utils.CodeInvalidTime},
	{services.ErrConflictingAppointment, http.StatusConflict, utils.CodeAppointmentConflict},
	{services.ErrDuplicateField, http.StatusConflict, utils.CodeDuplicateField},
	{services.ErrPasswordMismatch, http.StatusBadRequest, utils.CodePasswordMismatch},
	{services.ErrUnderage, http.StatusBadRequest, utils.CodeUnderage},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, utils.CodeInvalidCredentials},
	{services.ErrInvalidTransition, http.StatusBadRequest, utils.CodeInvalidTransition},
	{services.ErrForbidden, http.StatusForbidden, utils.CodeForbidden},
}

// respondError writes the envelope for err. Unclassified errors are logged
// and reported as a generic 500 so internals do not leak.
func respondError(c *gin.Context, logger zerolog.Logger, err error) {
	var derr *services.DomainError
	if errors.As(err, &derr) {
		for _, m := range errorMappings {
			if errors.Is(derr, m.kind) {
				utils.Error(c, m.status, utils.ErrorBody{Code: m.code, Message: derr.Message, Field: derr.Field})
				return
			}
		}
	}

	logger.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(c)).
		Str("path", c.Request.URL.Path).
		Msg("unhandled error")
	_ = c.Error(err)
	utils.InternalServerError(c, "An unexpected error occurred")
}

// actorFromContext reads the authenticated principal set by AuthMiddleware.
func actorFromContext(c *gin.Context) (services.Actor, bool) {
	id, ok := middleware.GetUserIDFromContext(c)
	if !ok || id == "" {
		return services.Actor{}, false
	}
	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{ID: id, Role: role}, true
}

func requireActor(c *gin.Context) (services.Actor, bool) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return services.Actor{}, false
	}
	return actor, true
}
