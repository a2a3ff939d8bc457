package handlers

import (
	"clinic-scheduling-server/internal/services"
	"clinic-scheduling-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler serves patient and provider profiles.
type UserHandler struct {
	Profiles *services.ProfileService
	Logger   zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(profiles *services.ProfileService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{Profiles: profiles, Logger: logger}
}

// GetPatient returns a patient profile. Patients may only read their own.
func (h *UserHandler) GetPatient(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	patient, err := h.Profiles.GetPatient(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	utils.Success(c, "Patient retrieved successfully", patient)
}

// GetProvider returns a provider profile to any authenticated user.
func (h *UserHandler) GetProvider(c *gin.Context) {
	provider, err := h.Profiles.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	utils.Success(c, "Provider retrieved successfully", provider)
}
