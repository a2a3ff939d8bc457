package services

import (
	"context"
	"errors"
	"fmt"

	"clinic-scheduling-server/internal/models"
	"clinic-scheduling-server/internal/repository"

	"gorm.io/gorm"
)

// ResolveActivePatient fetches a patient and asserts it exists and is active.
func ResolveActivePatient(ctx context.Context, patients repository.PatientRepositoryContract, id string) (*models.Patient, error) {
	if id == "" {
		return nil, newError(ErrNotFound, "Patient ID cannot be empty")
	}
	patient, err := patients.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Patient not found with ID: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load patient %s: %w", id, err)
	}
	if !patient.IsActive {
		return nil, newError(ErrInactive, "Patient is not active: %s", id)
	}
	return patient, nil
}

// ResolveActiveProvider fetches a provider and asserts it exists and is active.
// Verification status is only enforced at login.
func ResolveActiveProvider(ctx context.Context, providers repository.ProviderRepositoryContract, id string) (*models.Provider, error) {
	if id == "" {
		return nil, newError(ErrNotFound, "Provider ID cannot be empty")
	}
	provider, err := providers.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Provider not found with ID: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load provider %s: %w", id, err)
	}
	if !provider.IsActive {
		return nil, newError(ErrInactive, "Provider is not active: %s", id)
	}
	return provider, nil
}
