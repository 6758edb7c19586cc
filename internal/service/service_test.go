package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"fjacquet/cashsense/internal/generator"
	"fjacquet/cashsense/internal/logging"
	"fjacquet/cashsense/internal/models"
	"fjacquet/cashsense/internal/schema"
	"fjacquet/cashsense/internal/schemaerr"
	"fjacquet/cashsense/internal/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, store TransactionStore, opts ...Option) *TransactionService {
	t.Helper()
	sch := schema.Default()
	gen := generator.New(sch,
		generator.WithRand(rand.New(rand.NewSource(42))),
		generator.WithClock(func() time.Time { return serviceNow }),
		generator.WithLogger(&logging.MockLogger{}))
	opts = append([]Option{
		WithLogger(&logging.MockLogger{}),
		WithClock(func() time.Time { return serviceNow }),
	}, opts...)
	return New(store, gen, validator.New(sch), opts...)
}

func manualTransaction(id, date string) models.Transaction {
	return models.Transaction{
		ID:             id,
		Date:           date,
		MerchantName:   "Migros",
		Amount:         decimal.NewFromFloat(12.5),
		PaymentChannel: models.ChannelInStore,
		Category: models.Category{
			ID:          "foodAndDrink",
			Subcategory: models.Subcategory{ID: "groceries"},
		},
	}
}

func TestGetTransactionsRequiresUserID(t *testing.T) {
	svc := newTestService(t, NewMockStore())

	_, err := svc.GetTransactions(context.Background(), "", 30)

	assert.ErrorIs(t, err, ErrUserIDRequired)
}

func TestGetTransactionsDemoSeedsOnFirstAccess(t *testing.T) {
	store := NewMockStore()
	svc := newTestService(t, store, WithMode(ModeDemo))
	ctx := context.Background()

	first, err := svc.GetTransactions(ctx, "user-1", 30)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	for _, tx := range first {
		assert.True(t, tx.IsTestData)
	}

	// A second access serves the stored set without reseeding.
	second, err := svc.GetTransactions(ctx, "user-1", 30)
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))
}

func TestGetTransactionsDemoSortedMostRecentFirst(t *testing.T) {
	svc := newTestService(t, NewMockStore(), WithMode(ModeDemo))

	transactions, err := svc.GetTransactions(context.Background(), "user-1", 30)
	require.NoError(t, err)

	for i := 1; i < len(transactions); i++ {
		assert.GreaterOrEqual(t, transactions[i-1].Date, transactions[i].Date)
	}
}

func TestGetTransactionsProdServesManualOnly(t *testing.T) {
	store := NewMockStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, "user-1", manualTransaction("txn_manual", "2024-03-10"), false, true)
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, "user-1", manualTransaction("txn_imported", "2024-03-11"), false, false)
	require.NoError(t, err)

	transactions, err := svc.GetTransactions(ctx, "user-1", 30)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "txn_manual", transactions[0].ID)
}

func TestGetManualTransactionsWindow(t *testing.T) {
	store := NewMockStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, "user-1", manualTransaction("txn_recent", "2024-03-10"), false, true)
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, "user-1", manualTransaction("txn_old", "2023-11-01"), false, true)
	require.NoError(t, err)

	transactions, err := svc.GetManualTransactions(ctx, "user-1", 30)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "txn_recent", transactions[0].ID)
}

func TestAddTransactionNormalizesRawInput(t *testing.T) {
	store := NewMockStore()
	svc := newTestService(t, store)

	tx, err := svc.AddTransaction(context.Background(), "user-1", map[string]any{
		"name":   "Coffee Shop",
		"amount": 4.5,
		"category": map[string]any{
			"id":          "foodAndDrink",
			"subcategory": map[string]any{"id": "coffee"},
		},
	}, false, true)

	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "Coffee Shop", tx.MerchantName)
	assert.Equal(t, "foodAndDrink", tx.Category.ID)
	require.Len(t, store.Transactions["user-1"], 1)
}

func TestAddTransactionRejectsInvalid(t *testing.T) {
	store := NewMockStore()
	svc := newTestService(t, store)

	_, err := svc.AddTransaction(context.Background(), "user-1", map[string]any{
		"merchant_name": "Mystery",
		"amount":        10.0,
		"category": map[string]any{
			"id":          "crypto",
			"subcategory": map[string]any{"id": "unknown"},
		},
	}, false, true)

	var unknown *schemaerr.UnknownCategoryError
	require.ErrorAs(t, err, &unknown)
	assert.Empty(t, store.Transactions["user-1"])
}

func TestAddTransactionPropagatesStoreError(t *testing.T) {
	store := NewMockStore()
	store.StoreError = errors.New("disk full")
	svc := newTestService(t, store)

	_, err := svc.AddTransaction(context.Background(), "user-1", manualTransaction("txn_x", "2024-03-10"), false, true)

	assert.ErrorContains(t, err, "disk full")
}

func TestResetDemoTransactionsKeepsManualTestData(t *testing.T) {
	store := NewMockStore()
	svc := newTestService(t, store, WithMode(ModeDemo))
	ctx := context.Background()

	_, err := svc.GetTransactions(ctx, "user-1", 30)
	require.NoError(t, err)

	// A manually entered test transaction must survive the reset.
	_, err = svc.AddTransaction(ctx, "user-1", manualTransaction("txn_manual_test", "2024-03-12"), true, true)
	require.NoError(t, err)

	transactions, err := svc.ResetDemoTransactions(ctx, "user-1", 30)
	require.NoError(t, err)
	require.NotEmpty(t, transactions)

	found := false
	for _, tx := range transactions {
		if tx.ID == "txn_manual_test" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestResetDemoTransactionsRegenerates(t *testing.T) {
	store := NewMockStore()
	svc := newTestService(t, store, WithMode(ModeDemo))
	ctx := context.Background()

	first, err := svc.GetTransactions(ctx, "user-1", 30)
	require.NoError(t, err)

	reset, err := svc.ResetDemoTransactions(ctx, "user-1", 30)
	require.NoError(t, err)
	require.NotEmpty(t, reset)

	// Fresh ids throughout: the old generated set is gone.
	oldIDs := make(map[string]bool, len(first))
	for _, tx := range first {
		oldIDs[tx.ID] = true
	}
	for _, tx := range reset {
		assert.False(t, oldIDs[tx.ID], "stale transaction %s survived reset", tx.ID)
	}
}

func TestSetDemoMode(t *testing.T) {
	svc := newTestService(t, NewMockStore())

	assert.Equal(t, ModeProd, svc.Mode())
	assert.False(t, svc.IsDemoMode())

	assert.Equal(t, ModeDemo, svc.SetDemoMode(true))
	assert.True(t, svc.IsDemoMode())

	assert.Equal(t, ModeProd, svc.SetDemoMode(false))
}

func TestFetchProviderTransactions(t *testing.T) {
	provider := &MockProvider{Records: []map[string]any{
		{"name": "Coffee Shop", "amount": 4.5, "category": "Food and Drink, Restaurants"},
		{"merchant_name": "SBB", "amount": 12.0, "category": []string{"Travel", "trainTickets"}},
	}}
	svc := newTestService(t, NewMockStore(), WithProvider(provider))

	transactions, err := svc.FetchProviderTransactions(context.Background(), "token", 30)

	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "Coffee Shop", transactions[0].MerchantName)
	assert.Equal(t, "foodanddrink", transactions[0].Category.ID)
	assert.Equal(t, "SBB", transactions[1].MerchantName)
	assert.Equal(t, "travel", transactions[1].Category.ID)
	assert.Equal(t, "trainTickets", transactions[1].Category.Subcategory.ID)
}

func TestFetchProviderTransactionsWithoutClient(t *testing.T) {
	svc := newTestService(t, NewMockStore())

	_, err := svc.FetchProviderTransactions(context.Background(), "token", 30)

	assert.Error(t, err)
}

func TestFetchProviderTransactionsPropagatesError(t *testing.T) {
	provider := &MockProvider{Err: errors.New("provider unavailable")}
	svc := newTestService(t, NewMockStore(), WithProvider(provider))

	_, err := svc.FetchProviderTransactions(context.Background(), "token", 30)

	assert.ErrorContains(t, err, "provider unavailable")
}
