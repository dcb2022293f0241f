package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"roomly/internal/shared/config"

	"github.com/IBM/sarama"
)

// Consumer reads notification messages off Kafka and delivers them by
// email.
type Consumer interface {
	Start(ctx context.Context) error
	Stop() error
}

type kafkaConsumer struct {
	group  sarama.ConsumerGroup
	topic  string
	sender EmailSender
	cancel context.CancelFunc
}

func NewKafkaConsumer(cfg config.KafkaConfig, sender EmailSender) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaConsumer{
		group:  group,
		topic:  cfg.NotificationTopic,
		sender: sender,
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.group.Errors() {
			log.Printf("Notification consumer error: %v", err)
		}
	}()

	go func() {
		handler := &groupHandler{sender: c.sender}
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				log.Printf("Notification consumer session ended: %v", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	log.Printf("Notification consumer started for topic %s", c.topic)
	return nil
}

func (c *kafkaConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	return c.group.Close()
}

type groupHandler struct {
	sender EmailSender
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for kafkaMessage := range claim.Messages() {
		message, err := MessageFromJSON(kafkaMessage.Value)
		if err != nil {
			log.Printf("Dropping malformed notification at offset %d: %v", kafkaMessage.Offset, err)
			session.MarkMessage(kafkaMessage, "")
			continue
		}

		switch message.Kind {
		case KindBookingConfirmed:
			if err := h.sender.SendBookingConfirmation(session.Context(), message); err != nil {
				log.Printf("Failed to send confirmation for booking %d: %v", message.Booking.BookingID, err)
			}
		default:
			log.Printf("Ignoring notification of unknown kind %q", message.Kind)
		}

		session.MarkMessage(kafkaMessage, "")
	}
	return nil
}
