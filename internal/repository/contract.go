package repository

import (
	"context"
	"time"

	"clinic-scheduling-server/internal/models"
)

// Lookups return gorm.ErrRecordNotFound when nothing matches and inserts return
// gorm.ErrDuplicatedKey when a unique index rejects the row.

// PatientRepositoryContract defines persistence operations for patients.
type PatientRepositoryContract interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	FindByEmail(ctx context.Context, email string) (*models.Patient, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}

// ProviderRepositoryContract defines persistence operations for providers.
type ProviderRepositoryContract interface {
	Create(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	FindByEmail(ctx context.Context, email string) (*models.Provider, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByLicense(ctx context.Context, license string) (bool, error)
	// LockForBooking takes a row lock on the provider for the rest of the
	// enclosing transaction so bookings for one provider are serialized.
	LockForBooking(ctx context.Context, id string) error
}

// AppointmentRepositoryContract defines persistence operations for appointments.
type AppointmentRepositoryContract interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// ExistsInWindow reports whether an active appointment of the provider has a
	// date-time within [from, to], both bounds inclusive.
	ExistsInWindow(ctx context.Context, providerID string, from, to time.Time) (bool, error)
	List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, int64, error)
	CountByStatus(ctx context.Context, filter AppointmentFilter) (map[models.AppointmentStatus]int64, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error
}

// Store groups the repositories and runs units of work.
type Store interface {
	Patients() PatientRepositoryContract
	Providers() ProviderRepositoryContract
	Appointments() AppointmentRepositoryContract
	// WithinTransaction runs fn against a store bound to a single transaction.
	// Returning an error from fn rolls everything back.
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
}

// Sort fields accepted by AppointmentFilter.SortBy.
const (
	SortByDateTime     = "dateTime"
	SortByPatientName  = "patientName"
	SortByProviderName = "providerName"
	SortByStatus       = "status"
)

// AppointmentFilter narrows and orders the active appointment set.
// Zero values mean "no constraint". Limit <= 0 disables pagination.
type AppointmentFilter struct {
	Status          models.AppointmentStatus
	AppointmentType models.AppointmentType
	Mode            models.AppointmentMode
	From            *time.Time // inclusive
	Until           *time.Time // exclusive
	PatientName     []string
	ProviderName    []string
	PatientID       string
	ProviderID      string
	SortBy          string
	Descending      bool
	Limit           int
	Offset          int
}
