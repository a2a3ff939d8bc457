package services

import (
	"context"
	"errors"
	"fmt"

	"clinic-scheduling-server/internal/models"
	"clinic-scheduling-server/internal/repository"

	"gorm.io/gorm"
)

// ProfileService serves sanitized patient and provider records.
type ProfileService struct {
	store repository.Store
}

// NewProfileService creates a new ProfileService.
func NewProfileService(store repository.Store) *ProfileService {
	return &ProfileService{store: store}
}

// GetPatient returns a patient profile. Patients may only read their own.
func (s *ProfileService) GetPatient(ctx context.Context, actor Actor, id string) (*models.PatientSanitized, error) {
	if actor.Role == models.RolePatient && actor.ID != id {
		return nil, newError(ErrForbidden, "You are not authorized to view this patient")
	}
	patient, err := s.store.Patients().GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Patient not found with ID: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load patient %s: %w", id, err)
	}
	out := patient.Sanitize()
	return &out, nil
}

// GetProvider returns a provider profile.
func (s *ProfileService) GetProvider(ctx context.Context, id string) (*models.ProviderSanitized, error) {
	provider, err := s.store.Providers().GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Provider not found with ID: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load provider %s: %w", id, err)
	}
	out := provider.Sanitize()
	return &out, nil
}
