package repository

import (
	"context"

	"github.com/hotelhub/booking-service/internal/models"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Customer, error) {
	if tx == nil {
		tx = r.db
	}
	var customer models.Customer
	if err := tx.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
