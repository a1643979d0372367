package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	"github.com/vladislavdragonenkov/returns/internal/messaging/kafka"
)

// kafkaRuntime объединяет producer событий возвратов и consumer квитанций склада.
type kafkaRuntime struct {
	producer  *kafka.Producer
	publisher domain.OutboxPublisher
	dlq       domain.OutboxPublisher
	consumer  *kafka.Consumer
}

// initKafka подключает Kafka, если заданы брокеры. Без брокеров события только логируются.
func initKafka(cfg Config, receiver kafka.Receiver, logger *log.Entry) (*kafkaRuntime, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("kafka brokers are not configured, outbox events will be logged only")
		return &kafkaRuntime{publisher: newLogPublisher(logger)}, nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaClientID)
	if err != nil {
		return nil, err
	}

	consumer, err := kafka.NewConsumer(
		cfg.KafkaBrokers,
		cfg.KafkaGroupID,
		[]string{cfg.KafkaReceiptsTopic},
		kafka.NewReceiptHandler(receiver, logger.WithField("component", "receipt-handler")),
		kafka.WithDLQ(producer),
		kafka.WithConsumerLogger(logger.WithField("component", "kafka-consumer")),
	)
	if err != nil {
		closeKafkaProducer(producer, logger)
		return nil, err
	}

	logger.WithFields(log.Fields{
		"brokers":        cfg.KafkaBrokers,
		"events_topic":   cfg.KafkaEventsTopic,
		"receipts_topic": cfg.KafkaReceiptsTopic,
	}).Info("kafka initialized")

	return &kafkaRuntime{
		producer:  producer,
		publisher: kafka.NewOutboxPublisher(producer, cfg.KafkaEventsTopic),
		dlq:       kafka.NewDLQPublisher(producer, cfg.KafkaDLQTopic),
		consumer:  consumer,
	}, nil
}

// closeKafkaProducer закрывает Kafka producer если он не nil.
func closeKafkaProducer(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}

// logPublisher заменяет Kafka в локальном режиме: событие пишется в лог и считается отправленным.
type logPublisher struct {
	logger *log.Entry
}

func newLogPublisher(logger *log.Entry) *logPublisher {
	return &logPublisher{logger: logger.WithField("component", "outbox-log-publisher")}
}

func (p *logPublisher) Publish(_ context.Context, event domain.OutboxMessage) error {
	p.logger.WithFields(log.Fields{
		"outbox_id":    event.ID,
		"event_type":   event.EventType,
		"aggregate_id": event.AggregateID,
	}).Info("return event")
	return nil
}

var _ domain.OutboxPublisher = (*logPublisher)(nil)
