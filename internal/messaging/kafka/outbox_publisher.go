package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

var errPublisherNotInitialized = errors.New("kafka outbox publisher is not initialized")

// OutboxTopicPublisher публикует outbox-сообщения в Kafka topic.
type OutboxTopicPublisher struct {
	producer *Producer
	topic    string
	raw      bool
}

// NewOutboxPublisher публикует события возвратов в Envelope.
func NewOutboxPublisher(producer *Producer, topic string) *OutboxTopicPublisher {
	if topic == "" {
		topic = TopicReturnEvents
	}
	return &OutboxTopicPublisher{producer: producer, topic: topic}
}

// NewDLQPublisher публикует payload без обёртки: worker уже сформировал конверт DLQ.
func NewDLQPublisher(producer *Producer, topic string) *OutboxTopicPublisher {
	if topic == "" {
		topic = TopicDeadLetterQueue
	}
	return &OutboxTopicPublisher{producer: producer, topic: topic, raw: true}
}

// Publish отправляет событие; ключ сообщения — идентификатор возврата.
func (p *OutboxTopicPublisher) Publish(ctx context.Context, event domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return errPublisherNotInitialized
	}

	key := event.AggregateID
	if key == "" {
		key = event.ID
	}
	headers := map[string]string{HeaderEventType: event.EventType}

	if p.raw {
		return p.producer.Publish(ctx, p.topic, key, event.Payload, headers)
	}

	return p.producer.PublishEvent(ctx, p.topic, key, Envelope{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       json.RawMessage(event.Payload),
		PublishedAt:   time.Now().UTC(),
	}, headers)
}

var _ domain.OutboxPublisher = (*OutboxTopicPublisher)(nil)
