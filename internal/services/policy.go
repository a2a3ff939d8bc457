package services

import (
	"context"
	"fmt"
	"time"

	"clinic-scheduling-server/internal/repository"
)

// ConflictWindow is the guard band on each side of an appointment.
const ConflictWindow = 30 * time.Minute

// TimePolicy enforces the booking time rules.
type TimePolicy struct {
	// MinLead is how far after "now" a booking must be. Zero means strictly after now.
	MinLead time.Duration
}

// CheckLeadTime fails with ErrInvalidTime unless requested is strictly after now+MinLead.
func (p TimePolicy) CheckLeadTime(now, requested time.Time) error {
	earliest := now.Add(p.MinLead)
	if !requested.After(earliest) {
		if p.MinLead > 0 {
			return newError(ErrInvalidTime, "Appointment time must be at least %d minutes in the future", int(p.MinLead/time.Minute))
		}
		return newError(ErrInvalidTime, "Appointment time must be in the future")
	}
	return nil
}

// Window returns the inclusive conflict window around t.
func (p TimePolicy) Window(t time.Time) (from, to time.Time) {
	return t.Add(-ConflictWindow), t.Add(ConflictWindow)
}

// CheckConflicts fails with ErrConflictingAppointment when another active
// appointment of the provider falls inside the window around requested.
func (p TimePolicy) CheckConflicts(ctx context.Context, appointments repository.AppointmentRepositoryContract, providerID string, requested time.Time) error {
	from, to := p.Window(requested)
	conflict, err := appointments.ExistsInWindow(ctx, providerID, from, to)
	if err != nil {
		return fmt.Errorf("check appointment conflicts: %w", err)
	}
	if conflict {
		return newError(ErrConflictingAppointment, "Appointment time conflicts with existing appointment for this provider")
	}
	return nil
}
