package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hotelhub/booking-service/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "bookings"
	ExchangeKind = "topic"
)

// Routing keys for the booking lifecycle. Downstream consumers (notification,
// reporting) bind with patterns like "booking.*".
const (
	EventCreated   = "booking.created"
	EventCheckedIn = "booking.checked_in"
	EventPaid      = "booking.paid"
	EventCancelled = "booking.cancelled"
)

// BookingEvent is the wire payload for every lifecycle routing key. Dates use
// the same YYYY-MM-DD form as the HTTP surface.
type BookingEvent struct {
	Event      string    `json:"event"`
	BookingID  uint      `json:"booking_id"`
	RoomID     uint      `json:"room_id"`
	CustomerID uint      `json:"customer_id"`
	EmployeeID *uint     `json:"employee_id,omitempty"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	CheckedIn  bool      `json:"checked_in"`
	Paid       bool      `json:"paid"`
	EmittedAt  time.Time `json:"emitted_at"`
}

func newBookingEvent(event string, b *models.Booking) BookingEvent {
	return BookingEvent{
		Event:      event,
		BookingID:  b.ID,
		RoomID:     b.RoomID,
		CustomerID: b.CustomerID,
		EmployeeID: b.EmployeeID,
		CheckIn:    b.CheckIn.Format("2006-01-02"),
		CheckOut:   b.CheckOut.Format("2006-01-02"),
		CheckedIn:  b.CheckedIn,
		Paid:       b.Paid,
		EmittedAt:  time.Now().UTC(),
	}
}

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return &Publisher{conn: conn, channel: ch}, nil
}

// PublishBookingEvent emits one lifecycle event for the booking, using the
// event name as the routing key.
func (p *Publisher) PublishBookingEvent(event string, b *models.Booking) error {
	body, err := json.Marshal(newBookingEvent(event, b))
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	if err := p.channel.Publish(
		ExchangeName,
		event,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		return fmt.Errorf("publish booking event: %w", err)
	}

	log.Printf("[RabbitMQ] %s booking=%d room=%d", event, b.ID, b.RoomID)
	return nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
