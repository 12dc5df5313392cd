package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"storefront/internal/producer"
	"storefront/internal/sender"
	"storefront/internal/service"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type EmailSender interface {
	SendEmail(n sender.EmailNotification) error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// OrderNotifier читает события заказов и отправляет письмо администратору магазина.
type OrderNotifier struct {
	reader   messageReader
	sender   EmailSender
	notifyTo string
	log      *zap.Logger
}

func NewOrderNotifier(brokers []string, groupID, topic, notifyTo string, s EmailSender, log *zap.Logger) *OrderNotifier {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          1,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return &OrderNotifier{reader: r, sender: s, notifyTo: notifyTo, log: log}
}

func (c *OrderNotifier) Run(ctx context.Context) error {
	c.log.Info("kafka consumer started")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			c.log.Error("read message", zap.Error(err))
			continue
		}
		if err := c.handle(m); err != nil {
			c.log.Error("handle order event", zap.ByteString("key", m.Key), zap.Error(err))
			continue
		}
	}
}

func (c *OrderNotifier) handle(m kafka.Message) error {
	var env producer.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}

	var n sender.EmailNotification
	switch env.Type {
	case service.EventOrderPlaced:
		var e service.OrderPlacedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return fmt.Errorf("unmarshal %s: %w", env.Type, err)
		}
		n = sender.EmailNotification{
			Subject:  fmt.Sprintf("Новый заказ №%d", e.OrderID),
			Template: "order_placed",
			Data:     e,
		}
	case service.EventOrderStatusChanged:
		var e service.OrderStatusChangedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return fmt.Errorf("unmarshal %s: %w", env.Type, err)
		}
		n = sender.EmailNotification{
			Subject:  fmt.Sprintf("Заказ №%d: %s", e.OrderID, e.To),
			Template: "order_status",
			Data:     e,
		}
	default:
		c.log.Debug("skip unknown event", zap.String("type", env.Type))
		return nil
	}

	n.To = c.notifyTo
	if err := c.sender.SendEmail(n); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	c.log.Info("email sent", zap.String("event_id", env.EventID), zap.String("type", env.Type))
	return nil
}

func (c *OrderNotifier) Close() error { return c.reader.Close() }
