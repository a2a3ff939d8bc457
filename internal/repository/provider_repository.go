package repository

import (
	"context"

	"clinic-scheduling-server/internal/models"

	"gorm.io/gorm"
)

// ProviderRepository is the gorm implementation of ProviderRepositoryContract.
type ProviderRepository struct {
	db *gorm.DB
}

func (r *ProviderRepository) Create(ctx context.Context, provider *models.Provider) error {
	return r.db.WithContext(ctx).Create(provider).Error
}

func (r *ProviderRepository) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	var provider models.Provider
	if err := r.db.WithContext(ctx).First(&provider, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *ProviderRepository) FindByEmail(ctx context.Context, email string) (*models.Provider, error) {
	var provider models.Provider
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&provider).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *ProviderRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.db, &models.Provider{}, "email", email)
}

func (r *ProviderRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return exists(ctx, r.db, &models.Provider{}, "phone_number", phone)
}

func (r *ProviderRepository) ExistsByLicense(ctx context.Context, license string) (bool, error) {
	return exists(ctx, r.db, &models.Provider{}, "license_number", license)
}

func (r *ProviderRepository) LockForBooking(ctx context.Context, id string) error {
	var provider models.Provider
	return r.db.WithContext(ctx).
		Clauses(forUpdate(r.db)...).
		Select("id").
		First(&provider, "id = ?", id).Error
}
