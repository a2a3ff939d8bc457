package repository

import (
	"context"

	"clinic-scheduling-server/internal/models"

	"gorm.io/gorm"
)

// PatientRepository is the gorm implementation of PatientRepositoryContract.
type PatientRepository struct {
	db *gorm.DB
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *PatientRepository) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *PatientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.db, &models.Patient{}, "email", email)
}

func (r *PatientRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return exists(ctx, r.db, &models.Patient{}, "phone_number", phone)
}
