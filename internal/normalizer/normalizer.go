// Package normalizer converts arbitrary transaction-shaped inputs into the
// canonical transaction record. Normalization never fails: every field has a
// default, and normalizing an already-canonical transaction is a no-op.
package normalizer

import (
	"encoding/hex"
	"encoding/json"
	"time"

	"fjacquet/cashsense/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source is the narrow accessor raw inputs are adapted into. Mapping and
// object inputs both reduce to a field lookup.
type Source interface {
	// Get returns the value of the named field and whether it was present.
	Get(name string) (any, bool)
}

// MapSource adapts a generic key-value mapping into a Source.
type MapSource map[string]any

// Get returns the value of the named field and whether it was present.
func (m MapSource) Get(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// SourceFunc adapts a lookup function into a Source.
type SourceFunc func(name string) (any, bool)

// Get returns the value of the named field and whether it was present.
func (f SourceFunc) Get(name string) (any, bool) {
	return f(name)
}

type emptySource struct{}

func (emptySource) Get(string) (any, bool) { return nil, false }

// Normalize converts raw input into a canonical transaction. Accepted inputs
// are canonical transactions (returned unchanged), generic mappings, and
// anything implementing Source; any other input yields a transaction built
// entirely from defaults.
func Normalize(raw any) models.Transaction {
	switch v := raw.(type) {
	case models.Transaction:
		return v
	case *models.Transaction:
		if v != nil {
			return *v
		}
		return fromSource(emptySource{})
	case MapSource:
		return fromSource(v)
	case map[string]any:
		return fromSource(MapSource(v))
	case Source:
		return fromSource(v)
	default:
		return fromSource(emptySource{})
	}
}

// NewTransactionID synthesizes an opaque transaction identifier.
func NewTransactionID() string {
	id := uuid.New()
	return "txn_" + hex.EncodeToString(id[:])[:12]
}

func fromSource(src Source) models.Transaction {
	tx := models.Transaction{
		ID:             stringField(src, "id", ""),
		Date:           stringField(src, "date", ""),
		MerchantName:   stringField(src, "merchant_name", ""),
		Amount:         decimalField(src, "amount"),
		PaymentChannel: stringField(src, "payment_channel", models.ChannelOther),
		Pending:        boolField(src, "pending"),
		Category:       parseCategoryInput(src).normalize(),
		IsTestData:     boolField(src, "is_test_data"),
	}

	if tx.ID == "" {
		tx.ID = NewTransactionID()
	}
	if tx.Date == "" {
		tx.Date = time.Now().Format(models.DateLayout)
	}
	if tx.MerchantName == "" {
		tx.MerchantName = stringField(src, "name", models.DefaultMerchant)
		if tx.MerchantName == "" {
			tx.MerchantName = models.DefaultMerchant
		}
	}
	if tx.PaymentChannel == "" {
		tx.PaymentChannel = models.ChannelOther
	}

	return tx
}

func stringField(src Source, name, fallback string) string {
	v, ok := src.Get(name)
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return s
}

func boolField(src Source, name string) bool {
	v, ok := src.Get(name)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func decimalField(src Source, name string) decimal.Decimal {
	v, ok := src.Get(name)
	if !ok {
		return decimal.Zero
	}
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case float64:
		return decimal.NewFromFloat(n)
	case float32:
		return decimal.NewFromFloat32(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d
		}
		return decimal.Zero
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}
