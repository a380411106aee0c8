package repository

import (
	"context"

	"github.com/hotelhub/booking-service/internal/models"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Employee, error)
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Employee, error) {
	if tx == nil {
		tx = r.db
	}
	var employee models.Employee
	if err := tx.WithContext(ctx).First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}
