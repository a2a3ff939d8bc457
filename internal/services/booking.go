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

// Actor is the authenticated principal on whose behalf an operation runs.
type Actor struct {
	ID   string
	Role models.Role
}

// BookingRequest is the validated input of the booking workflow.
type BookingRequest struct {
	PatientID       string
	ProviderID      string
	AppointmentType models.AppointmentType
	Mode            models.AppointmentMode
	DateTime        time.Time
	ReasonForVisit  string
	EstimatedAmount float64
	ClinicAddress   models.Address
}

// BookingResult confirms a persisted appointment.
type BookingResult struct {
	AppointmentID string    `json:"appointmentId"`
	PatientID     string    `json:"patientId"`
	ProviderID    string    `json:"providerId"`
	Status        string    `json:"status"`
	DateTime      time.Time `json:"dateTime"`
	Timestamp     time.Time `json:"timestamp"`
}

// AppointmentService books, lists and advances appointments.
type AppointmentService struct {
	store  repository.Store
	policy TimePolicy
	logger zerolog.Logger
	now    func() time.Time
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(store repository.Store, policy TimePolicy, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{
		store:  store,
		policy: policy,
		logger: logger.With().Str("component", "appointments").Logger(),
		now:    time.Now,
	}
}

// Book validates the patient, provider and requested time and persists a new
// SCHEDULED appointment. Everything runs in one transaction.
func (s *AppointmentService) Book(ctx context.Context, actor Actor, req BookingRequest) (*BookingResult, error) {
	if actor.Role == models.RolePatient && actor.ID != req.PatientID {
		return nil, newError(ErrForbidden, "Patients can only book appointments for themselves")
	}

	s.logger.Info().
		Str("patient_id", req.PatientID).
		Str("provider_id", req.ProviderID).
		Msg("booking appointment")

	requested := req.DateTime.UTC()
	var appointment *models.Appointment

	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		patient, err := ResolveActivePatient(ctx, tx.Patients(), req.PatientID)
		if err != nil {
			return err
		}
		provider, err := ResolveActiveProvider(ctx, tx.Providers(), req.ProviderID)
		if err != nil {
			return err
		}
		if err := s.policy.CheckLeadTime(s.now(), requested); err != nil {
			return err
		}
		if err := tx.Providers().LockForBooking(ctx, provider.ID); err != nil {
			return fmt.Errorf("lock provider %s: %w", provider.ID, err)
		}
		if err := s.policy.CheckConflicts(ctx, tx.Appointments(), provider.ID, requested); err != nil {
			return err
		}

		appointment = &models.Appointment{
			PatientID:       patient.ID,
			ProviderID:      provider.ID,
			AppointmentType: req.AppointmentType,
			Mode:            req.Mode,
			DateTime:        requested,
			ReasonForVisit:  strings.TrimSpace(req.ReasonForVisit),
			EstimatedAmount: req.EstimatedAmount,
			ClinicAddress:   trimAddress(req.ClinicAddress),
			Status:          models.StatusScheduled,
			IsActive:        true,
		}
		if err := tx.Appointments().Create(ctx, appointment); err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		var derr *DomainError
		if errors.As(err, &derr) {
			s.logger.Warn().Err(err).Str("patient_id", req.PatientID).Str("provider_id", req.ProviderID).Msg("booking rejected")
		}
		return nil, err
	}

	s.logger.Info().
		Str("appointment_id", appointment.ID).
		Time("date_time", appointment.DateTime).
		Msg("appointment booked")

	return &BookingResult{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		ProviderID:    appointment.ProviderID,
		Status:        appointment.Status.Lower(),
		DateTime:      appointment.DateTime,
		Timestamp:     s.now().UTC(),
	}, nil
}

// Get returns one active appointment to its patient or provider.
func (s *AppointmentService) Get(ctx context.Context, actor Actor, id string) (*models.Appointment, error) {
	appointment, err := s.store.Appointments().GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Appointment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load appointment %s: %w", id, err)
	}
	if actor.ID != appointment.PatientID && actor.ID != appointment.ProviderID {
		return nil, newError(ErrForbidden, "You are not authorized to view this appointment")
	}
	return appointment, nil
}

// UpdateStatus advances an appointment along the status workflow. Only the
// appointment's own provider may do so.
func (s *AppointmentService) UpdateStatus(ctx context.Context, actor Actor, id string, next models.AppointmentStatus) (*models.Appointment, error) {
	if !next.Valid() {
		return nil, newError(ErrInvalidTransition, "Unknown appointment status: %s", next)
	}

	var updated *models.Appointment
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		appointment, err := tx.Appointments().GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotFound, "Appointment not found")
		}
		if err != nil {
			return fmt.Errorf("load appointment %s: %w", id, err)
		}
		if actor.Role != models.RoleProvider || actor.ID != appointment.ProviderID {
			return newError(ErrForbidden, "Only the appointment's provider can change its status")
		}
		if !appointment.Status.CanTransitionTo(next) {
			return newError(ErrInvalidTransition, "Cannot change status from %s to %s", appointment.Status, next)
		}
		if err := tx.Appointments().UpdateStatus(ctx, id, next); err != nil {
			return fmt.Errorf("update appointment %s status: %w", id, err)
		}
		appointment.Status = next
		updated = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("appointment_id", id).Str("status", string(next)).Msg("appointment status updated")
	return updated, nil
}

func trimAddress(a models.Address) models.Address {
	return models.Address{
		Street: strings.TrimSpace(a.Street),
		City:   strings.TrimSpace(a.City),
		State:  strings.TrimSpace(a.State),
		Zip:    strings.TrimSpace(a.Zip),
	}
}
