package kafka

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

// Topics сервиса возвратов.
const (
	TopicReturnEvents      = "rms.return.events"
	TopicWarehouseReceipts = "rms.warehouse.receipts"
	TopicDeadLetterQueue   = "rms.dlq"
)

// Kafka headers.
const (
	HeaderEventType     = "x-event-type"
	HeaderRetryCount    = "x-retry-count"
	HeaderOriginalTopic = "x-original-topic"
	HeaderErrorMessage  = "x-error-message"
	HeaderFailedAt      = "x-failed-at"
)

// Envelope — формат события возврата в топике TopicReturnEvents.
type Envelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	PublishedAt   time.Time       `json:"published_at"`
}

// ReceiptItem — позиция, принятая складом.
type ReceiptItem struct {
	ItemID   string `json:"item_id"`
	Quantity int32  `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

// ReceiptMessage — квитанция склада о приёмке возврата.
type ReceiptMessage struct {
	ReturnID      string        `json:"return_id"`
	LocationID    string        `json:"location_id,omitempty"`
	AllowMismatch bool          `json:"allow_mismatch"`
	RefundAmount  *int64        `json:"refund_amount,omitempty"`
	Items         []ReceiptItem `json:"items"`
	ReceivedAt    time.Time     `json:"received_at"`
}

// DeadLetter — сообщение, отправленное в DLQ после неудачной обработки.
type DeadLetter struct {
	OriginalTopic     string    `json:"original_topic"`
	OriginalPartition int32     `json:"original_partition"`
	OriginalOffset    int64     `json:"original_offset"`
	OriginalKey       string    `json:"original_key"`
	OriginalValue     string    `json:"original_value"`
	ErrorMessage      string    `json:"error_message"`
	RetryCount        int       `json:"retry_count"`
	FailedAt          time.Time `json:"failed_at"`
}

// ParseReceipt разбирает и проверяет квитанцию склада.
func ParseReceipt(message *sarama.ConsumerMessage) (ReceiptMessage, error) {
	var receipt ReceiptMessage
	if err := json.Unmarshal(message.Value, &receipt); err != nil {
		return ReceiptMessage{}, fmt.Errorf("unmarshal receipt: %w", err)
	}

	receipt.ReturnID = strings.TrimSpace(receipt.ReturnID)
	if receipt.ReturnID == "" && len(message.Key) > 0 {
		receipt.ReturnID = string(message.Key)
	}
	if receipt.ReturnID == "" {
		return ReceiptMessage{}, fmt.Errorf("receipt: return_id is required")
	}
	if len(receipt.Items) == 0 {
		return ReceiptMessage{}, fmt.Errorf("receipt %s: items are required", receipt.ReturnID)
	}
	return receipt, nil
}

// ParseEnvelope разбирает событие возврата.
func ParseEnvelope(message *sarama.ConsumerMessage) (Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal(message.Value, &envelope); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return envelope, nil
}

func header(message *sarama.ConsumerMessage, key string) (string, bool) {
	for _, h := range message.Headers {
		if h != nil && string(h.Key) == key {
			return string(h.Value), true
		}
	}
	return "", false
}
