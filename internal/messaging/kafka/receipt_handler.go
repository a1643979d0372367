package kafka

import (
	"context"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	"github.com/vladislavdragonenkov/returns/internal/service/returns"
)

// Receiver принимает возврат по квитанции склада.
type Receiver interface {
	Receive(ctx context.Context, in returns.ReceiveInput) (domain.Return, error)
}

// NewReceiptHandler превращает квитанции склада в вызовы Receive.
// Ошибки данных и состояния возврата не повторяются.
func NewReceiptHandler(receiver Receiver, logger *log.Entry) MessageHandler {
	if logger == nil {
		logger = log.WithField("component", "receipt-handler")
	}

	return func(ctx context.Context, message *sarama.ConsumerMessage) error {
		receipt, err := ParseReceipt(message)
		if err != nil {
			return Permanent(err)
		}

		items := make([]returns.ItemInput, 0, len(receipt.Items))
		for _, item := range receipt.Items {
			items = append(items, returns.ItemInput{ItemID: item.ItemID, Quantity: item.Quantity, Note: item.Note})
		}

		ret, err := receiver.Receive(ctx, returns.ReceiveInput{
			ReturnID:      receipt.ReturnID,
			Items:         items,
			RefundAmount:  receipt.RefundAmount,
			AllowMismatch: receipt.AllowMismatch,
			LocationID:    receipt.LocationID,
		})
		switch {
		case err == nil:
		case domain.IsNotFound(err), domain.IsInvalidData(err), domain.IsNotAllowed(err):
			return Permanent(err)
		default:
			return err
		}

		logger.WithFields(log.Fields{
			"return_id": ret.ID,
			"status":    ret.Status,
			"offset":    message.Offset,
		}).Info("warehouse receipt applied")
		return nil
	}
}
