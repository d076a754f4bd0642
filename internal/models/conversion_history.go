package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionHistory is one row of the conversion_history table.
type ConversionHistory struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	TransactionID   string          `gorm:"column:transaction_id;not null;uniqueIndex"`
	SourceCurrency  string          `gorm:"column:source_currency;type:char(3);not null"`
	TargetCurrency  string          `gorm:"column:target_currency;type:char(3);not null"`
	Amount          decimal.Decimal `gorm:"column:amount;type:numeric(19,4);not null"`
	ConvertedAmount decimal.Decimal `gorm:"column:converted_amount;type:numeric(19,4);not null"`
	ExchangeRate    decimal.Decimal `gorm:"column:exchange_rate;type:numeric(19,6);not null"`
	ConversionDate  time.Time       `gorm:"column:conversion_date;not null;index"`
}

// TableName pins the table name for gorm.
func (ConversionHistory) TableName() string {
	return "conversion_history"
}
