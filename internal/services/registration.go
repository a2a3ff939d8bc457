package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-scheduling-server/internal/models"
	"clinic-scheduling-server/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// MinimumPatientAge is the youngest age, in whole years, allowed to register.
const MinimumPatientAge = 13

// PatientRegistration is the validated input for a new patient.
type PatientRegistration struct {
	FirstName        string
	LastName         string
	Email            string
	PhoneNumber      string
	Password         string
	ConfirmPassword  string
	DateOfBirth      time.Time
	Gender           models.Gender
	Address          models.Address
	EmergencyContact *models.EmergencyContact
	MedicalHistory   []string
	InsuranceInfo    *models.InsuranceInfo
}

// ProviderRegistration is the validated input for a new provider.
type ProviderRegistration struct {
	FirstName         string
	LastName          string
	Email             string
	PhoneNumber       string
	Password          string
	ConfirmPassword   string
	Specialization    models.Specialization
	LicenseNumber     string
	YearsOfExperience int
	ClinicAddress     models.Address
}

// PatientRegistered is returned after a patient is created.
type PatientRegistered struct {
	PatientID     string `json:"patient_id"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	EmailVerified bool   `json:"email_verified"`
	PhoneVerified bool   `json:"phone_verified"`
}

// ProviderRegistered is returned after a provider is created.
type ProviderRegistered struct {
	ProviderID string `json:"providerId"`
	Email      string `json:"email"`
	Status     string `json:"status"`
}

// RegistrationService creates patient and provider accounts.
type RegistrationService struct {
	store      repository.Store
	bcryptCost int
	logger     zerolog.Logger
	now        func() time.Time
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(store repository.Store, bcryptCost int, logger zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		store:      store,
		bcryptCost: bcryptCost,
		logger:     logger.With().Str("component", "registration").Logger(),
		now:        time.Now,
	}
}

// RegisterPatient creates an active, unverified patient.
func (s *RegistrationService) RegisterPatient(ctx context.Context, req PatientRegistration) (*PatientRegistered, error) {
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.PhoneNumber)

	patient := &models.Patient{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          email,
		PhoneNumber:    phone,
		DateOfBirth:    dateOnly(req.DateOfBirth),
		Gender:         req.Gender,
		Address:        trimAddress(req.Address),
		MedicalHistory: trimAll(req.MedicalHistory),
		IsActive:       true,
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = models.EmergencyContact{
			Name:         strings.TrimSpace(req.EmergencyContact.Name),
			Phone:        strings.TrimSpace(req.EmergencyContact.Phone),
			Relationship: strings.TrimSpace(req.EmergencyContact.Relationship),
		}
	}
	if req.InsuranceInfo != nil {
		patient.InsuranceInfo = models.InsuranceInfo{
			Provider:     strings.TrimSpace(req.InsuranceInfo.Provider),
			PolicyNumber: strings.TrimSpace(req.InsuranceInfo.PolicyNumber),
		}
	}

	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if err := checkPatientUnique(ctx, tx.Patients(), email, phone); err != nil {
			return err
		}
		if req.Password != req.ConfirmPassword {
			return &DomainError{Kind: ErrPasswordMismatch, Field: "confirmPassword", Message: "Password and confirm password do not match"}
		}
		if AgeOn(patient.DateOfBirth, s.now().UTC()) < MinimumPatientAge {
			return &DomainError{Kind: ErrUnderage, Field: "dateOfBirth", Message: fmt.Sprintf("Patient must be at least %d years old", MinimumPatientAge)}
		}
		if err := patient.SetPassword(req.Password, s.bcryptCost); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if err := tx.Patients().Create(ctx, patient); err != nil {
			return fmt.Errorf("create patient: %w", err)
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race with a concurrent registration. Find which field collided.
		if derr := checkPatientUnique(ctx, s.store.Patients(), email, phone); derr != nil {
			return nil, derr
		}
		return nil, duplicateField("", "Patient already exists")
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("patient_id", patient.ID).Msg("patient registered")
	return &PatientRegistered{
		PatientID:     patient.ID,
		Email:         patient.Email,
		PhoneNumber:   patient.PhoneNumber,
		EmailVerified: patient.EmailVerified,
		PhoneVerified: patient.PhoneVerified,
	}, nil
}

// RegisterProvider creates an active provider pending verification.
func (s *RegistrationService) RegisterProvider(ctx context.Context, req ProviderRegistration) (*ProviderRegistered, error) {
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.PhoneNumber)
	license := strings.TrimSpace(req.LicenseNumber)

	provider := &models.Provider{
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Email:              email,
		PhoneNumber:        phone,
		Specialization:     req.Specialization,
		LicenseNumber:      license,
		YearsOfExperience:  req.YearsOfExperience,
		ClinicAddress:      trimAddress(req.ClinicAddress),
		VerificationStatus: models.VerificationPending,
		IsActive:           true,
	}

	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if err := checkProviderUnique(ctx, tx.Providers(), email, phone, license); err != nil {
			return err
		}
		if req.Password != req.ConfirmPassword {
			return &DomainError{Kind: ErrPasswordMismatch, Field: "confirmPassword", Message: "Password and confirm password do not match"}
		}
		if err := provider.SetPassword(req.Password, s.bcryptCost); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if err := tx.Providers().Create(ctx, provider); err != nil {
			return fmt.Errorf("create provider: %w", err)
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if derr := checkProviderUnique(ctx, s.store.Providers(), email, phone, license); derr != nil {
			return nil, derr
		}
		return nil, duplicateField("", "Provider already exists")
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("provider_id", provider.ID).Msg("provider registered")
	return &ProviderRegistered{
		ProviderID: provider.ID,
		Email:      provider.Email,
		Status:     strings.ToLower(string(provider.VerificationStatus)),
	}, nil
}

func checkPatientUnique(ctx context.Context, patients repository.PatientRepositoryContract, email, phone string) error {
	taken, err := patients.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check patient email: %w", err)
	}
	if taken {
		return duplicateField("email", "Email is already registered")
	}
	taken, err = patients.ExistsByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("check patient phone: %w", err)
	}
	if taken {
		return duplicateField("phoneNumber", "Phone number is already registered")
	}
	return nil
}

func checkProviderUnique(ctx context.Context, providers repository.ProviderRepositoryContract, email, phone, license string) error {
	taken, err := providers.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check provider email: %w", err)
	}
	if taken {
		return duplicateField("email", "Email is already registered")
	}
	taken, err = providers.ExistsByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("check provider phone: %w", err)
	}
	if taken {
		return duplicateField("phoneNumber", "Phone number is already registered")
	}
	taken, err = providers.ExistsByLicense(ctx, license)
	if err != nil {
		return fmt.Errorf("check provider license: %w", err)
	}
	if taken {
		return duplicateField("licenseNumber", "License number is already registered")
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
