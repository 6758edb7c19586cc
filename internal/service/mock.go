package service

import (
	"context"
	"sort"
	"time"

	"fjacquet/cashsense/internal/models"
	"fjacquet/cashsense/internal/storage"
)

type storedTransaction struct {
	tx       models.Transaction
	isManual bool
}

// MockStore is an in-memory TransactionStore for testing.
type MockStore struct {
	Transactions map[string][]storedTransaction

	// Error hooks for testing error conditions
	StoreError  error
	QueryError  error
	CountError  error
	DeleteError error
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{Transactions: make(map[string][]storedTransaction)}
}

// Store appends the transaction to the user's in-memory set.
func (m *MockStore) Store(_ context.Context, userID string, tx models.Transaction, isManual bool) error {
	if m.StoreError != nil {
		return m.StoreError
	}
	m.Transactions[userID] = append(m.Transactions[userID], storedTransaction{tx: tx, isManual: isManual})
	return nil
}

// Query filters the user's in-memory set the way the SQLite store does.
func (m *MockStore) Query(_ context.Context, userID, minDate string, f storage.Filters) ([]models.Transaction, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	var result []models.Transaction
	for _, stored := range m.Transactions[userID] {
		if stored.tx.Date < minDate {
			continue
		}
		if f.IsTestData != nil && stored.tx.IsTestData != *f.IsTestData {
			continue
		}
		if f.IsManual != nil && stored.isManual != *f.IsManual {
			continue
		}
		result = append(result, stored.tx)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date > result[j].Date })
	return result, nil
}

// CountDemo counts the user's test-data transactions.
func (m *MockStore) CountDemo(_ context.Context, userID string) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	count := 0
	for _, stored := range m.Transactions[userID] {
		if stored.tx.IsTestData {
			count++
		}
	}
	return count, nil
}

// DeleteDemo removes the user's generated (non-manual) test transactions.
func (m *MockStore) DeleteDemo(_ context.Context, userID string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	var kept []storedTransaction
	for _, stored := range m.Transactions[userID] {
		if stored.tx.IsTestData && !stored.isManual {
			continue
		}
		kept = append(kept, stored)
	}
	m.Transactions[userID] = kept
	return nil
}

// MockProvider is a ProviderClient returning fixed raw records.
type MockProvider struct {
	Records []map[string]any
	Err     error
}

// Fetch returns the configured records.
func (m *MockProvider) Fetch(_ context.Context, _ string, _, _ time.Time) ([]map[string]any, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}
