package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-scheduling-server/internal/models"
	"clinic-scheduling-server/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const testBcryptCost = 4

var testNow = time.Date(2030, time.March, 10, 9, 0, 0, 0, time.UTC)

// memStore is an in-memory repository.Store. WithinTransaction snapshots the
// maps and restores them when fn fails.
type memStore struct {
	mu           sync.Mutex
	patients     map[string]models.Patient
	providers    map[string]models.Provider
	appointments map[string]models.Appointment

	// Hooks for injecting failures.
	CreatePatientFunc     func(p *models.Patient) error
	CreateProviderFunc    func(p *models.Provider) error
	CreateAppointmentFunc func(a *models.Appointment) error
	// AfterRollback simulates a concurrent commit that survives the rollback.
	AfterRollback func()

	LockCalls int
	TxCalls   int
}

func newMemStore() *memStore {
	return &memStore{
		patients:     make(map[string]models.Patient),
		providers:    make(map[string]models.Provider),
		appointments: make(map[string]models.Appointment),
	}
}

func (m *memStore) Patients() repository.PatientRepositoryContract { return memPatients{m} }

func (m *memStore) Providers() repository.ProviderRepositoryContract { return memProviders{m} }

func (m *memStore) Appointments() repository.AppointmentRepositoryContract {
	return memAppointments{m}
}

func (m *memStore) WithinTransaction(ctx context.Context, fn func(tx repository.Store) error) error {
	m.mu.Lock()
	m.TxCalls++
	patients := clone(m.patients)
	providers := clone(m.providers)
	appointments := clone(m.appointments)
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.patients, m.providers, m.appointments = patients, providers, appointments
		m.mu.Unlock()
		if m.AfterRollback != nil {
			m.AfterRollback()
			m.AfterRollback = nil
		}
		return err
	}
	return nil
}

func clone[T any](in map[string]T) map[string]T {
	out := make(map[string]T, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *memStore) addPatient(p models.Patient) models.Patient {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.patients[p.ID] = p
	return p
}

func (m *memStore) addProvider(p models.Provider) models.Provider {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.providers[p.ID] = p
	return p
}

func (m *memStore) addAppointment(a models.Appointment) models.Appointment {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.appointments[a.ID] = a
	return a
}

type memPatients struct{ m *memStore }

func (r memPatients) Create(ctx context.Context, p *models.Patient) error {
	if r.m.CreatePatientFunc != nil {
		if err := r.m.CreatePatientFunc(p); err != nil {
			return err
		}
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.patients {
		if existing.Email == p.Email || existing.PhoneNumber == p.PhoneNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	*p = r.m.addPatient(*p)
	return nil
}

func (r memPatients) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.patients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r memPatients) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.patients {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memPatients) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r memPatients) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.patients {
		if p.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

type memProviders struct{ m *memStore }

func (r memProviders) Create(ctx context.Context, p *models.Provider) error {
	if r.m.CreateProviderFunc != nil {
		if err := r.m.CreateProviderFunc(p); err != nil {
			return err
		}
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.providers {
		if existing.Email == p.Email || existing.PhoneNumber == p.PhoneNumber || existing.LicenseNumber == p.LicenseNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	*p = r.m.addProvider(*p)
	return nil
}

func (r memProviders) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.providers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r memProviders) FindByEmail(ctx context.Context, email string) (*models.Provider, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.providers {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memProviders) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r memProviders) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.any(func(p models.Provider) bool { return p.PhoneNumber == phone }), nil
}

func (r memProviders) ExistsByLicense(ctx context.Context, license string) (bool, error) {
	return r.any(func(p models.Provider) bool { return p.LicenseNumber == license }), nil
}

func (r memProviders) LockForBooking(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.LockCalls++
	if _, ok := r.m.providers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r memProviders) any(match func(models.Provider) bool) bool {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.providers {
		if match(p) {
			return true
		}
	}
	return false
}

type memAppointments struct{ m *memStore }

func (r memAppointments) Create(ctx context.Context, a *models.Appointment) error {
	if r.m.CreateAppointmentFunc != nil {
		if err := r.m.CreateAppointmentFunc(a); err != nil {
			return err
		}
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	*a = r.m.addAppointment(*a)
	return nil
}

func (r memAppointments) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.appointments[id]
	if !ok || !a.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	r.m.preload(&a)
	return &a, nil
}

func (r memAppointments) ExistsInWindow(ctx context.Context, providerID string, from, to time.Time) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.appointments {
		if a.IsActive && a.ProviderID == providerID && !a.DateTime.Before(from) && !a.DateTime.After(to) {
			return true, nil
		}
	}
	return false, nil
}

func (r memAppointments) List(ctx context.Context, f repository.AppointmentFilter) ([]models.Appointment, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rows := r.m.filter(f)
	sort.Slice(rows, func(i, j int) bool {
		if f.Descending {
			return rows[i].DateTime.After(rows[j].DateTime)
		}
		return rows[i].DateTime.Before(rows[j].DateTime)
	})
	total := int64(len(rows))
	if f.Limit > 0 {
		if f.Offset >= len(rows) {
			rows = nil
		} else {
			end := f.Offset + f.Limit
			if end > len(rows) {
				end = len(rows)
			}
			rows = rows[f.Offset:end]
		}
	}
	return rows, total, nil
}

func (r memAppointments) CountByStatus(ctx context.Context, f repository.AppointmentFilter) (map[models.AppointmentStatus]int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	counts := make(map[models.AppointmentStatus]int64)
	for _, a := range r.m.filter(f) {
		counts[a.Status]++
	}
	return counts, nil
}

func (r memAppointments) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.appointments[id]
	if !ok || !a.IsActive {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	r.m.appointments[id] = a
	return nil
}

func (m *memStore) filter(f repository.AppointmentFilter) []models.Appointment {
	var rows []models.Appointment
	for _, a := range m.appointments {
		if !a.IsActive {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.ProviderID != "" && a.ProviderID != f.ProviderID {
			continue
		}
		if f.PatientID != "" && a.PatientID != f.PatientID {
			continue
		}
		m.preload(&a)
		if !matchesName(a.Patient.FirstName, a.Patient.LastName, f.PatientName) {
			continue
		}
		rows = append(rows, a)
	}
	return rows
}

func (m *memStore) preload(a *models.Appointment) {
	a.Patient = m.patients[a.PatientID]
	a.Provider = m.providers[a.ProviderID]
}

func matchesName(first, last string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(strings.ToLower(first), t) && !strings.Contains(strings.ToLower(last), t) {
			return false
		}
	}
	return true
}

func fixedClock() time.Time { return testNow }

func seedPatient(m *memStore, email string) models.Patient {
	p := models.Patient{
		FirstName:   "Jane",
		LastName:    "Smith",
		Email:       email,
		PhoneNumber: "+1555" + email[:3],
		DateOfBirth: time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC),
		Gender:      models.GenderFemale,
		IsActive:    true,
	}
	_ = p.SetPassword("Password@123", testBcryptCost)
	return m.addPatient(p)
}

func seedProvider(m *memStore, email string) models.Provider {
	p := models.Provider{
		FirstName:          "John",
		LastName:           "Doe",
		Email:              email,
		PhoneNumber:        "+1666" + email[:3],
		Specialization:     models.SpecializationCardiology,
		LicenseNumber:      "LIC" + email[:3],
		YearsOfExperience:  10,
		VerificationStatus: models.VerificationVerified,
		IsActive:           true,
	}
	_ = p.SetPassword("Password@123", testBcryptCost)
	return m.addProvider(p)
}

func nopLogger() zerolog.Logger { return zerolog.Nop() }
