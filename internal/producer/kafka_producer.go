package producer

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Envelope: формат сообщения в топике заказов.
type Envelope struct {
	EventID    string          `json:"event_id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventProducer публикует события заказов. Реализует service.EventBus.
type OrderEventProducer struct {
	writer messageWriter
	now    func() time.Time
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	return &OrderEventProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{}, // события одного заказа попадают в одну партицию
			RequiredAcks:           kafka.RequireAll,
			BatchTimeout:           10 * time.Millisecond, // по умолчанию 1s
			AllowAutoTopicCreation: true,
		},
		now: time.Now,
	}
}

func (p *OrderEventProducer) PublishOrderPlaced(ctx context.Context, e service.OrderPlacedEvent) error {
	return p.publish(ctx, e.OrderID, service.EventOrderPlaced, e)
}

func (p *OrderEventProducer) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	return p.publish(ctx, e.OrderID, service.EventOrderStatusChanged, e)
}

// publish отвязан от отмены ctx запроса, заказ к этому моменту уже закоммичен.
func (p *OrderEventProducer) publish(ctx context.Context, orderID uint, typ string, payload any) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	value, err := json.Marshal(Envelope{
		EventID:    uuid.NewString(),
		Type:       typ,
		OccurredAt: p.now().UTC(),
		Payload:    body,
	})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(strconv.FormatUint(uint64(orderID), 10)),
		Value:   value,
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(typ)}},
	})
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}
