package repository

import (
	"context"

	"github.com/hotelhub/booking-service/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	// FindByRoom returns the room's ledger ordered by check-in ascending.
	FindByRoom(ctx context.Context, roomID uint) ([]models.Booking, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]models.Booking, error)
	// HasConflict reports whether any booking for the room overlaps the stay
	// under the half-open rule. Run inside the admission transaction, after
	// the room row lock, so the answer stays true until commit.
	HasConflict(ctx context.Context, tx *gorm.DB, roomID uint, stay models.StayRange) (bool, error)
	// SetCheckedIn / SetPaid are one-way transitions: updating an already-set
	// flag is a no-op. Both return gorm.ErrRecordNotFound when the booking no
	// longer exists.
	SetCheckedIn(ctx context.Context, id uint) error
	SetPaid(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByRoom(ctx context.Context, roomID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("check_in ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByCustomer(ctx context.Context, customerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("customer_id = ?", customerID).
		Order("check_in ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) HasConflict(ctx context.Context, tx *gorm.DB, roomID uint, stay models.StayRange) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("room_id = ? AND check_in < ? AND ? < check_out", roomID, stay.CheckOut, stay.CheckIn).
		Count(&count).Error
	return count > 0, err
}

func (r *bookingRepository) SetCheckedIn(ctx context.Context, id uint) error {
	return r.setFlag(ctx, id, "checked_in")
}

func (r *bookingRepository) SetPaid(ctx context.Context, id uint) error {
	return r.setFlag(ctx, id, "paid")
}

// setFlag reports ErrRecordNotFound when the row is gone, so a booking
// deleted between the caller's lookup and the update does not report success.
func (r *bookingRepository) setFlag(ctx context.Context, id uint, column string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update(column, true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}
