package models

import (
	"github.com/shopspring/decimal"
)

// TransactionCSVRow is the flattened CSV representation of a transaction.
// The nested category shape is spread over two columns.
type TransactionCSVRow struct {
	ID             string          `csv:"Id"`
	Date           string          `csv:"Date"`
	MerchantName   string          `csv:"MerchantName"`
	Amount         decimal.Decimal `csv:"Amount"`
	PaymentChannel string          `csv:"PaymentChannel"`
	Pending        bool            `csv:"Pending"`
	Category       string          `csv:"Category"`
	Subcategory    string          `csv:"Subcategory"`
	IsTestData     bool            `csv:"IsTestData"`
}

// ToCSVRow flattens the transaction for CSV output.
func (t Transaction) ToCSVRow() TransactionCSVRow {
	return TransactionCSVRow{
		ID:             t.ID,
		Date:           t.Date,
		MerchantName:   t.MerchantName,
		Amount:         t.Amount,
		PaymentChannel: t.PaymentChannel,
		Pending:        t.Pending,
		Category:       t.Category.ID,
		Subcategory:    t.Category.Subcategory.ID,
		IsTestData:     t.IsTestData,
	}
}

// ToTransaction rebuilds the canonical nested transaction from a CSV row.
func (r TransactionCSVRow) ToTransaction() Transaction {
	return Transaction{
		ID:             r.ID,
		Date:           r.Date,
		MerchantName:   r.MerchantName,
		Amount:         r.Amount,
		PaymentChannel: r.PaymentChannel,
		Pending:        r.Pending,
		Category: Category{
			ID:          r.Category,
			Subcategory: Subcategory{ID: r.Subcategory},
		},
		IsTestData: r.IsTestData,
	}
}
