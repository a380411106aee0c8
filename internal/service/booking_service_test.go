package service

import (
	"context"
	"testing"
	"time"

	"github.com/hotelhub/booking-service/internal/models"
	"github.com/hotelhub/booking-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	findByIDFn     func(ctx context.Context, id uint) (*models.Booking, error)
	findByRoomFn   func(ctx context.Context, roomID uint) ([]models.Booking, error)
	setCheckedInFn func(ctx context.Context, id uint) error
	setPaidFn      func(ctx context.Context, id uint) error
	deleteFn       func(ctx context.Context, id uint) error
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	return nil
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindByRoom(ctx context.Context, roomID uint) ([]models.Booking, error) {
	return m.findByRoomFn(ctx, roomID)
}
func (m *mockBookingRepo) FindByCustomer(ctx context.Context, customerID uint) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) HasConflict(ctx context.Context, tx *gorm.DB, roomID uint, stay models.StayRange) (bool, error) {
	return false, nil
}
func (m *mockBookingRepo) SetCheckedIn(ctx context.Context, id uint) error {
	if m.setCheckedInFn != nil {
		return m.setCheckedInFn(ctx, id)
	}
	return nil
}
func (m *mockBookingRepo) SetPaid(ctx context.Context, id uint) error {
	if m.setPaidFn != nil {
		return m.setPaidFn(ctx, id)
	}
	return nil
}
func (m *mockBookingRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

// --- Mock RoomRepository ---

type mockRoomRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.Room, error)
}

func (m *mockRoomRepo) ListViews(ctx context.Context, filter repository.RoomFilter, stay *models.StayRange) ([]repository.RoomView, error) {
	return nil, nil
}
func (m *mockRoomRepo) CountFreeByArea(ctx context.Context, stay models.StayRange) ([]repository.AreaCount, error) {
	return nil, nil
}
func (m *mockRoomRepo) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRoomRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRoomRepo) ListByHotel(ctx context.Context, hotelID uint) ([]models.Room, error) {
	return nil, nil
}
func (m *mockRoomRepo) GetDB() *gorm.DB { return nil }

// --- Mock CustomerRepository ---

type mockCustomerRepo struct {
	findByIDFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Customer, error)
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Customer, error) {
	return m.findByIDFn(ctx, tx, id)
}

// --- Mock EmployeeRepository ---

type mockEmployeeRepo struct {
	findByIDFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Employee, error)
}

func (m *mockEmployeeRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Employee, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, tx, id)
	}
	return &models.Employee{ID: id}, nil
}

// --- Tests ---

func stay(inDay, outDay int) models.StayRange {
	return models.NewStayRange(
		time.Date(2024, 3, inDay, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, outDay, 0, 0, 0, 0, time.UTC),
	)
}

func TestAdmit_InvalidRange(t *testing.T) {
	svc := NewBookingService(&mockBookingRepo{}, &mockRoomRepo{}, &mockCustomerRepo{}, &mockEmployeeRepo{}, nil, nil)

	// start == end
	booking, err := svc.Admit(context.Background(), 1, 1, nil, stay(10, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Nil(t, booking)

	// start > end
	booking, err = svc.Admit(context.Background(), 1, 1, nil, stay(15, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Nil(t, booking)
}

func TestCheckIn_SetsFlag(t *testing.T) {
	setCalls := 0
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return &models.Booking{ID: id, RoomID: 1, CustomerID: 1}, nil
		},
		setCheckedInFn: func(ctx context.Context, id uint) error {
			setCalls++
			return nil
		},
	}
	svc := NewBookingService(repo, &mockRoomRepo{}, &mockCustomerRepo{}, &mockEmployeeRepo{}, nil, nil)

	booking, err := svc.CheckIn(context.Background(), 7)

	assert.NoError(t, err)
	assert.True(t, booking.CheckedIn)
	assert.Equal(t, 1, setCalls)
}

func TestCheckIn_AlreadySetIsNoOp(t *testing.T) {
	setCalls := 0
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return &models.Booking{ID: id, CheckedIn: true}, nil
		},
		setCheckedInFn: func(ctx context.Context, id uint) error {
			setCalls++
			return nil
		},
	}
	svc := NewBookingService(repo, &mockRoomRepo{}, &mockCustomerRepo{}, &mockEmployeeRepo{}, nil, nil)

	booking, err := svc.CheckIn(context.Background(), 7)

	assert.NoError(t, err)
	assert.True(t, booking.CheckedIn)
	assert.Equal(t, 0, setCalls, "repeat check-in must not touch the store")
}

func TestMarkPaid_AlreadySetIsNoOp(t *testing.T) {
	setCalls := 0
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return &models.Booking{ID: id, Paid: true}, nil
		},
		setPaidFn: func(ctx context.Context, id uint) error {
			setCalls++
			return nil
		},
	}
	svc := NewBookingService(repo, &mockRoomRepo{}, &mockCustomerRepo{}, &mockEmployeeRepo{}, nil, nil)

	booking, err := svc.MarkPaid(context.Background(), 7)

	assert.NoError(t, err)
	assert.True(t, booking.Paid)
	assert.Equal(t, 0, setCalls)
}

// A cancel landing between the flag lookup and the update must surface as
// NotFound, not success.
func TestCheckIn_DeletedBetweenLookupAndUpdate(t *testing.T) {
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return &models.Booking{ID: id}, nil
		},
		setCheckedInFn: func(ctx context.Context, id uint) error {
			return gorm.ErrRecordNotFound
		},
	}
	svc := NewBookingService(repo, &mockRoomRepo{}, &mockCustomerRepo{}, &mockEmployeeRepo{}, nil, nil)

	booking, err := svc.CheckIn(context.Background(), 7)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Nil(t, booking)
}

func TestMarkPaid_DeletedBetweenLookupAndUpdate(t *testing.T) {
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return &models.Booking{ID: id}, nil
		},
		setPaidFn: func(ctx context.Context, id uint) error {
			return gorm.ErrRecordNotFound
		},
	}
	svc := NewBookingService(repo, &mockRoomRepo{}, &mockCustomerRepo{}, &mockEmployeeRepo{}, nil, nil)

	booking, err := svc.MarkPaid(context.Background(), 7)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Nil(t, booking)
}

func TestMarkPaid_NotFound(t *testing.T) {
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewBookingService(repo, &mockRoomRepo{}, &mockCustomerRepo{}, &mockEmployeeRepo{}, nil, nil)

	booking, err := svc.MarkPaid(context.Background(), 999)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Nil(t, booking)
}

func TestListByRoom_RoomNotFound(t *testing.T) {
	roomRepo := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Room, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewBookingService(&mockBookingRepo{}, roomRepo, &mockCustomerRepo{}, &mockEmployeeRepo{}, nil, nil)

	bookings, err := svc.ListByRoom(context.Background(), 404)

	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Nil(t, bookings)
}

func TestListByRoom_OrderedLedger(t *testing.T) {
	roomRepo := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Room, error) {
			return &models.Room{ID: id}, nil
		},
	}
	repo := &mockBookingRepo{
		findByRoomFn: func(ctx context.Context, roomID uint) ([]models.Booking, error) {
			return []models.Booking{
				{ID: 1, RoomID: roomID, CheckIn: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
				{ID: 2, RoomID: roomID, CheckIn: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
	}
	svc := NewBookingService(repo, roomRepo, &mockCustomerRepo{}, &mockEmployeeRepo{}, nil, nil)

	bookings, err := svc.ListByRoom(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, bookings, 2)
	assert.True(t, bookings[0].CheckIn.Before(bookings[1].CheckIn))
}

func TestCancel_NotFound(t *testing.T) {
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewBookingService(repo, &mockRoomRepo{}, &mockCustomerRepo{}, &mockEmployeeRepo{}, nil, nil)

	err := svc.Cancel(context.Background(), 999)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_InvalidatesAreaCache(t *testing.T) {
	invalidated := 0
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return &models.Booking{ID: id}, nil
		},
	}
	svc := NewBookingService(repo, &mockRoomRepo{}, &mockCustomerRepo{}, &mockEmployeeRepo{}, nil,
		func(ctx context.Context) { invalidated++ })

	err := svc.Cancel(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, invalidated)
}
