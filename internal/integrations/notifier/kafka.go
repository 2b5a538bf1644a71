package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// KafkaNotifier публикует события заявок и OTP в Kafka.
// Доставкой писем и SMS занимаются потребители топика.
type KafkaNotifier struct {
	writer MessageWriter
	log    Logger
}

// NewKafkaNotifier создаёт writer для топика. Ключ сообщения - id заявки или email,
// поэтому события одной заявки попадают в одну партицию и читаются по порядку.
func NewKafkaNotifier(brokers []string, topic string, writeTimeout time.Duration, log Logger) *KafkaNotifier {
	return NewKafkaNotifierWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}, log)
}

func NewKafkaNotifierWithWriter(writer MessageWriter, log Logger) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, log: log}
}

// Notify отправляет событие синхронно
func (n *KafkaNotifier) Notify(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(toMessage(event))
	if err != nil {
		return fmt.Errorf("%w: type=%s: %v", ErrEncode, event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
		Time: event.OccurredAt,
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: type=%s key=%s: %v", ErrPublish, event.Type, event.Key, err)
	}

	n.log.Info("Notifier: event published: type=%s, key=%s", event.Type, event.Key)
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

func toMessage(event domain.Event) Message {
	return Message{
		Type:       string(event.Type),
		RequestID:  event.RequestID,
		EmployeeID: event.EmployeeID,
		Email:      event.Email,
		Status:     string(event.Status),
		SlotLabel:  event.SlotLabel,
		Reason:     event.Reason,
		Code:       event.Code,
		OccurredAt: event.OccurredAt,
	}
}
