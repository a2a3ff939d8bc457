package repository

import (
	"context"
	"strings"
	"time"

	"clinic-scheduling-server/internal/models"

	"gorm.io/gorm"
)

// AppointmentRepository is the gorm implementation of AppointmentRepositoryContract.
type AppointmentRepository struct {
	db *gorm.DB
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Omit("Patient", "Provider").Create(appointment).Error
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Provider").
		Where("is_active = ?", true).
		First(&appointment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepository) ExistsInWindow(ctx context.Context, providerID string, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("provider_id = ? AND is_active = ?", providerID, true).
		Where("date_time BETWEEN ? AND ?", from.UTC(), to.UTC()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.filtered(ctx, filter).
		Select("appointments.*").
		Preload("Patient").
		Preload("Provider")
	for _, order := range orderColumns(filter) {
		query = query.Order(order)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *AppointmentRepository) CountByStatus(ctx context.Context, filter AppointmentFilter) (map[models.AppointmentStatus]int64, error) {
	var rows []struct {
		Status models.AppointmentStatus
		Total  int64
	}
	err := r.filtered(ctx, filter).
		Select("appointments.status AS status, COUNT(*) AS total").
		Group("appointments.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.AppointmentStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// filtered builds a fresh query over active appointments joined with their
// patient and provider, narrowed by everything in filter except ordering and paging.
func (r *AppointmentRepository) filtered(ctx context.Context, f AppointmentFilter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Joins("JOIN providers ON providers.id = appointments.provider_id").
		Where("appointments.is_active = ?", true)

	if f.Status != "" {
		q = q.Where("appointments.status = ?", f.Status)
	}
	if f.AppointmentType != "" {
		q = q.Where("appointments.appointment_type = ?", f.AppointmentType)
	}
	if f.Mode != "" {
		q = q.Where("appointments.mode = ?", f.Mode)
	}
	if f.From != nil {
		q = q.Where("appointments.date_time >= ?", f.From.UTC())
	}
	if f.Until != nil {
		q = q.Where("appointments.date_time < ?", f.Until.UTC())
	}
	if f.PatientID != "" {
		q = q.Where("appointments.patient_id = ?", f.PatientID)
	}
	if f.ProviderID != "" {
		q = q.Where("appointments.provider_id = ?", f.ProviderID)
	}
	for _, token := range f.PatientName {
		like := "%" + strings.ToLower(token) + "%"
		q = q.Where("(LOWER(patients.first_name) LIKE ? OR LOWER(patients.last_name) LIKE ?)", like, like)
	}
	for _, token := range f.ProviderName {
		like := "%" + strings.ToLower(token) + "%"
		q = q.Where("(LOWER(providers.first_name) LIKE ? OR LOWER(providers.last_name) LIKE ?)", like, like)
	}
	return q
}

func orderColumns(f AppointmentFilter) []string {
	dir := " ASC"
	if f.Descending {
		dir = " DESC"
	}

	var cols []string
	switch f.SortBy {
	case SortByPatientName:
		cols = []string{"patients.last_name" + dir, "patients.first_name" + dir, "appointments.date_time ASC"}
	case SortByProviderName:
		cols = []string{"providers.last_name" + dir, "providers.first_name" + dir, "appointments.date_time ASC"}
	case SortByStatus:
		cols = []string{"appointments.status" + dir, "appointments.date_time ASC"}
	default:
		cols = []string{"appointments.date_time" + dir}
	}
	return append(cols, "appointments.id ASC")
}
