package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on top of a *gorm.DB.
type GormStore struct {
	db *gorm.DB
}

// Compile-time check to ensure GormStore implements Store
var _ Store = (*GormStore)(nil)

// NewStore creates a new GormStore.
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Patients() PatientRepositoryContract {
	return &PatientRepository{db: s.db}
}

func (s *GormStore) Providers() ProviderRepositoryContract {
	return &ProviderRepository{db: s.db}
}

func (s *GormStore) Appointments() AppointmentRepositoryContract {
	return &AppointmentRepository{db: s.db}
}

func (s *GormStore) WithinTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// forUpdate returns a row-locking clause on dialects that support it.
func forUpdate(db *gorm.DB) []clause.Expression {
	switch db.Dialector.Name() {
	case "mysql", "postgres":
		return []clause.Expression{clause.Locking{Strength: "UPDATE"}}
	default:
		return nil
	}
}

func exists(ctx context.Context, db *gorm.DB, model interface{}, column, value string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(model).Where(column+" = ?", value).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
