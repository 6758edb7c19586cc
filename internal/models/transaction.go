// Package models provides the data structures used throughout the application.
package models

import (
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for transaction dates (no time component).
const DateLayout = "2006-01-02"

// Default values applied during normalization.
const (
	DefaultMerchant = "Unknown Merchant"
	FillerMerchant  = "Inconnu"

	CategoryOther      = "other"
	SubcategoryUnknown = "unknown"

	ChannelOnline  = "online"
	ChannelInStore = "in store"
	ChannelOther   = "other"
)

func init() {
	// The wire shape declares amount as a JSON number, not a string.
	decimal.MarshalJSONWithoutQuotes = true
}

// Subcategory identifies a subcategory within its parent category.
type Subcategory struct {
	ID string `json:"id" yaml:"id"`
}

// Category is the canonical nested category shape carried by every
// transaction.
type Category struct {
	ID          string      `json:"id" yaml:"id"`
	Subcategory Subcategory `json:"subcategory" yaml:"subcategory"`
}

// Transaction is the canonical transaction record. Amount sign convention:
// negative = money in (income, refund), positive = money out (expense).
// Instances are values; once produced by the normalizer or generator they are
// never mutated.
type Transaction struct {
	ID             string          `json:"id" yaml:"id"`
	Date           string          `json:"date" yaml:"date"`
	MerchantName   string          `json:"merchant_name" yaml:"merchant_name"`
	Amount         decimal.Decimal `json:"amount" yaml:"amount"`
	PaymentChannel string          `json:"payment_channel" yaml:"payment_channel"`
	Pending        bool            `json:"pending" yaml:"pending"`
	Category       Category        `json:"category" yaml:"category"`
	IsTestData     bool            `json:"is_test_data" yaml:"is_test_data"`
}

// IsIncome reports whether the transaction represents money coming in.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsNegative()
}

// ToMap converts the transaction to the generic mapping form consumed by the
// schema validator.
func (t Transaction) ToMap() map[string]any {
	return map[string]any{
		"id":              t.ID,
		"date":            t.Date,
		"merchant_name":   t.MerchantName,
		"amount":          t.Amount,
		"payment_channel": t.PaymentChannel,
		"pending":         t.Pending,
		"category": map[string]any{
			"id": t.Category.ID,
			"subcategory": map[string]any{
				"id": t.Category.Subcategory.ID,
			},
		},
		"is_test_data": t.IsTestData,
	}
}
