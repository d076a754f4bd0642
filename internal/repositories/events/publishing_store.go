// Package events publishes conversion history to Kafka.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	portsrepo "github.com/seadmustafa/FXAPI/internal/core/ports/repositories"
	"github.com/seadmustafa/FXAPI/internal/middleware"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// EventConversionRecorded is the event type of every published message.
const EventConversionRecorded = "conversion.recorded"

// ConversionRecordedEvent is the message value written for each saved conversion.
type ConversionRecordedEvent struct {
	Type            string          `json:"type"`
	TransactionID   string          `json:"transactionId"`
	SourceCurrency  string          `json:"sourceCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	ConversionDate  time.Time       `json:"conversionDate"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PublishingStore saves through the wrapped store and then publishes a
// ConversionRecordedEvent. Publish failures are logged and never fail Save.
type PublishingStore struct {
	portsrepo.ConversionHistoryRepositoryFacade
	writer messageWriter
	logger *slog.Logger
}

var _ portsrepo.ConversionHistoryRepositoryFacade = (*PublishingStore)(nil)

// NewPublishingStore wraps store with a Kafka writer for topic.
func NewPublishingStore(store portsrepo.ConversionHistoryRepositoryFacade, brokers []string, topic string, logger *slog.Logger) *PublishingStore {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return newPublishingStore(store, writer, logger)
}

func newPublishingStore(store portsrepo.ConversionHistoryRepositoryFacade, writer messageWriter, logger *slog.Logger) *PublishingStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PublishingStore{ConversionHistoryRepositoryFacade: store, writer: writer, logger: logger}
}

// Save persists record and publishes it once persisted.
func (p *PublishingStore) Save(ctx context.Context, record domain.ConversionRecord) error {
	if err := p.ConversionHistoryRepositoryFacade.Save(ctx, record); err != nil {
		return err
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		logger = p.logger
	}

	value, err := json.Marshal(toEvent(record))
	if err != nil {
		logger.Error("failed to encode conversion event", "transaction_id", record.TransactionID, "error", err)
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(record.TransactionID),
		Value: value,
		Time:  record.ConvertedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Warn("failed to publish conversion event", "transaction_id", record.TransactionID, "error", err)
		return nil
	}
	logger.Debug("published conversion event", "transaction_id", record.TransactionID)
	return nil
}

// Close flushes and closes the Kafka writer.
func (p *PublishingStore) Close() error {
	return p.writer.Close()
}

func toEvent(record domain.ConversionRecord) ConversionRecordedEvent {
	return ConversionRecordedEvent{
		Type:            EventConversionRecorded,
		TransactionID:   record.TransactionID,
		SourceCurrency:  string(record.SourceCurrency),
		TargetCurrency:  string(record.TargetCurrency),
		Amount:          record.Amount,
		ConvertedAmount: record.ConvertedAmount,
		ExchangeRate:    record.Rate,
		ConversionDate:  record.ConvertedAt.UTC(),
	}
}
