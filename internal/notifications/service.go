package notifications

import (
	"context"
	"log"

	"roomly/internal/bookings"
	"roomly/internal/shared/config"
)

// Service is the outward face of this package. It satisfies
// bookings.NotificationPublisher so the booking flow stays decoupled from
// Kafka.
type Service interface {
	PublishBookingConfirmed(ctx context.Context, event bookings.ConfirmationEvent) error
	Start(ctx context.Context) error
	Close() error
}

type service struct {
	producer Producer
	consumer Consumer
}

// NewService wires the Kafka producer, consumer and SMTP sender. When
// Kafka is disabled in config it returns a no-op service so the rest of
// the application does not care.
func NewService(cfg *config.Config) (Service, error) {
	if !cfg.Kafka.Enabled {
		log.Println("Kafka disabled, booking notifications are off")
		return &noopService{}, nil
	}

	producer, err := NewKafkaProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}

	sender, err := NewSMTPSender(cfg.Email)
	if err != nil {
		return nil, err
	}

	consumer, err := NewKafkaConsumer(cfg.Kafka, sender)
	if err != nil {
		return nil, err
	}

	return &service{producer: producer, consumer: consumer}, nil
}

func (s *service) PublishBookingConfirmed(ctx context.Context, event bookings.ConfirmationEvent) error {
	return s.producer.Publish(ctx, NewBookingConfirmedMessage(event))
}

func (s *service) Start(ctx context.Context) error {
	return s.consumer.Start(ctx)
}

func (s *service) Close() error {
	if err := s.consumer.Stop(); err != nil {
		log.Printf("Error stopping notification consumer: %v", err)
	}
	return s.producer.Close()
}

type noopService struct{}

func (n *noopService) PublishBookingConfirmed(context.Context, bookings.ConfirmationEvent) error {
	return nil
}
func (n *noopService) Start(context.Context) error { return nil }
func (n *noopService) Close() error                { return nil }
