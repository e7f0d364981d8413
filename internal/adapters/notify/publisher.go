package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"seatbooking/internal/domain"
)

// RoutingKeyReserved is the routing key of booking.reserved messages.
const RoutingKeyReserved = "booking.reserved"

// PublisherConfig holds configuration for creating a booking publisher.
type PublisherConfig struct {
	// Provider is "amqp" or "noop". An empty URL with provider "amqp" falls back to noop.
	Provider string
	URL      string
	Exchange string
	Timeout  time.Duration
}

// BookingReservedMessage is the JSON body published after a reservation commits.
type BookingReservedMessage struct {
	MessageID  string    `json:"message_id"`
	BookingID  int64     `json:"booking_id"`
	EventID    int64     `json:"event_id"`
	EventName  string    `json:"event_name"`
	UserID     string    `json:"user_id"`
	ReservedAt time.Time `json:"reserved_at"`
}

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher is a domain.BookingPublisher that can be closed on shutdown.
type Publisher interface {
	domain.BookingPublisher
	Close() error
}

// NewPublisher creates a publisher from config. Provider "amqp" dials the broker and declares
// a durable topic exchange; "noop" or unknown providers log and drop messages.
func NewPublisher(config PublisherConfig, logger *slog.Logger) (Publisher, error) {
	switch config.Provider {
	case "amqp":
		if config.URL == "" {
			logger.Warn("amqp publisher requested without url, using noop")
			return &noopPublisher{logger: logger}, nil
		}
		conn, err := amqp.Dial(config.URL)
		if err != nil {
			return nil, fmt.Errorf("dial amqp: %w", err)
		}
		ch, err := conn.Channel()
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("open amqp channel: %w", err)
		}
		err = ch.ExchangeDeclare(
			config.Exchange,
			"topic",
			true,  // durable
			false, // auto-deleted
			false, // internal
			false, // no-wait
			nil,
		)
		if err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("declare exchange %s: %w", config.Exchange, err)
		}
		return newAMQPPublisher(ch, conn, config.Exchange, config.Timeout), nil
	case "noop":
		return &noopPublisher{logger: logger}, nil
	default:
		logger.Warn("unknown booking publisher provider, using noop", "provider", config.Provider)
		return &noopPublisher{logger: logger}, nil
	}
}

type amqpPublisher struct {
	mu       sync.Mutex
	ch       channel
	conn     *amqp.Connection
	exchange string
	timeout  time.Duration
	newID    func() string
}

func newAMQPPublisher(ch channel, conn *amqp.Connection, exchange string, timeout time.Duration) *amqpPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &amqpPublisher{
		ch:       ch,
		conn:     conn,
		exchange: exchange,
		timeout:  timeout,
		newID:    uuid.NewString,
	}
}

func (p *amqpPublisher) PublishReserved(ctx context.Context, b *domain.Booking, ev *domain.Event) error {
	msg := BookingReservedMessage{
		MessageID:  p.newID(),
		BookingID:  b.ID,
		EventID:    b.EventID,
		EventName:  ev.Name,
		UserID:     b.UserID,
		ReservedAt: b.CreatedAt,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal booking message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingKeyReserved, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    msg.MessageID,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", RoutingKeyReserved, err)
	}
	return nil
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

type noopPublisher struct {
	logger *slog.Logger
}

func (n *noopPublisher) PublishReserved(ctx context.Context, b *domain.Booking, ev *domain.Event) error {
	n.logger.DebugContext(ctx, "booking notification dropped (noop)", "booking_id", b.ID, "event_id", b.EventID)
	return nil
}

func (n *noopPublisher) Close() error { return nil }
