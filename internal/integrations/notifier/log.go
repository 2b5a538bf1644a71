package notifier

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// LogNotifier пишет события в лог, когда Kafka не настроена
type LogNotifier struct {
	log Logger
}

func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, event domain.Event) error {
	n.log.Info("Notifier: type=%s, key=%s, request_id=%s, status=%s, slot=%s",
		event.Type, event.Key, event.RequestID, event.Status, event.SlotLabel)
	return nil
}

func (n *LogNotifier) Close() error {
	return nil
}
