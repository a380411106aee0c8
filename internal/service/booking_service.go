package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hotelhub/booking-service/internal/models"
	"github.com/hotelhub/booking-service/internal/repository"
	"github.com/hotelhub/booking-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	// ErrInvalidRange rejects empty or inverted stay ranges.
	ErrInvalidRange = errors.New("check-in date must be before check-out date")
	ErrRoomNotFound = errors.New("room not found")
	// ErrRoomUnavailable means the room exists but is flagged damaged.
	ErrRoomUnavailable  = errors.New("room is unavailable")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrBookingNotFound  = errors.New("booking not found")
	// ErrStayConflict is a business outcome, not a transient failure: the
	// requested range overlaps an existing booking. Callers must not retry
	// it; they should pick different dates or a different room.
	ErrStayConflict = errors.New("room is already booked for an overlapping date range")
)

type BookingService interface {
	// Admit creates a booking iff no existing booking for the room overlaps
	// the stay. The conflict check and insert run in one transaction under a
	// row lock on the room, so concurrent admits on the same room serialize
	// and at most one of two overlapping requests succeeds.
	Admit(ctx context.Context, roomID, customerID uint, employeeID *uint, stay models.StayRange) (*models.Booking, error)
	CheckIn(ctx context.Context, bookingID uint) (*models.Booking, error)
	MarkPaid(ctx context.Context, bookingID uint) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID uint) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListByRoom(ctx context.Context, roomID uint) ([]models.Booking, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	roomRepo     repository.RoomRepository
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	publisher    *rabbitmq.Publisher
	invalidate   func(ctx context.Context) // area-count cache invalidation hook
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	publisher *rabbitmq.Publisher,
	invalidate func(ctx context.Context),
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		publisher:    publisher,
		invalidate:   invalidate,
	}
}

func (s *bookingService) Admit(ctx context.Context, roomID, customerID uint, employeeID *uint, stay models.StayRange) (*models.Booking, error) {
	if !stay.Valid() {
		return nil, ErrInvalidRange
	}

	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the room row — serializes concurrent admits for this room
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, roomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("lock room: %w", err)
		}

		// 2. Damaged rooms are never admitted
		if room.Damaged {
			return ErrRoomUnavailable
		}

		// 3. The booking must reference a real customer
		if _, err := s.customerRepo.FindByID(ctx, tx, customerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return fmt.Errorf("find customer: %w", err)
		}

		// 4. So must the employee, when the booking is made at the desk
		if employeeID != nil {
			if _, err := s.employeeRepo.FindByID(ctx, tx, *employeeID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrEmployeeNotFound
				}
				return fmt.Errorf("find employee: %w", err)
			}
		}

		// 5. Conflict check under the lock
		conflict, err := s.bookingRepo.HasConflict(ctx, tx, roomID, stay)
		if err != nil {
			return fmt.Errorf("conflict check: %w", err)
		}
		if conflict {
			return ErrStayConflict
		}

		// 6. Append to the ledger
		booking := &models.Booking{
			RoomID:     roomID,
			CustomerID: customerID,
			EmployeeID: employeeID,
			ReservedAt: time.Now().UTC(),
			CheckIn:    stay.CheckIn,
			CheckOut:   stay.CheckOut,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.invalidate != nil {
		s.invalidate(ctx)
	}
	s.publish(rabbitmq.EventCreated, result)
	return result, nil
}

// CheckIn sets the checked-in flag. Calling it again after the flag is set
// is a no-op and returns the booking unchanged.
func (s *bookingService) CheckIn(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CheckedIn {
		return booking, nil
	}
	if err := s.bookingRepo.SetCheckedIn(ctx, bookingID); err != nil {
		// The booking can be cancelled between the lookup and the update
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("set checked-in: %w", err)
	}
	booking.CheckedIn = true
	s.publish(rabbitmq.EventCheckedIn, booking)
	return booking, nil
}

// MarkPaid sets the paid flag with the same no-op semantics as CheckIn.
func (s *bookingService) MarkPaid(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Paid {
		return booking, nil
	}
	if err := s.bookingRepo.SetPaid(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("set paid: %w", err)
	}
	booking.Paid = true
	s.publish(rabbitmq.EventPaid, booking)
	return booking, nil
}

// Cancel removes a booking from the ledger. This is the administrative path;
// nothing in the core expires bookings automatically.
func (s *bookingService) Cancel(ctx context.Context, bookingID uint) error {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if s.invalidate != nil {
		s.invalidate(ctx)
	}
	s.publish(rabbitmq.EventCancelled, booking)
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return s.findBooking(ctx, id)
}

func (s *bookingService) ListByRoom(ctx context.Context, roomID uint) ([]models.Booking, error) {
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return s.bookingRepo.FindByRoom(ctx, roomID)
}

func (s *bookingService) ListByCustomer(ctx context.Context, customerID uint) ([]models.Booking, error) {
	return s.bookingRepo.FindByCustomer(ctx, customerID)
}

func (s *bookingService) findBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) publish(event string, booking *models.Booking) {
	if s.publisher == nil || booking == nil {
		return
	}
	// Best effort: a lost event never fails the request
	_ = s.publisher.PublishBookingEvent(event, booking)
}
