// Package service orchestrates transaction retrieval and storage around the
// core generator, normalizer and validator. In demo mode transactions are
// synthesized on first access and persisted; in prod mode only stored data is
// served.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fjacquet/cashsense/internal/cache"
	"fjacquet/cashsense/internal/generator"
	"fjacquet/cashsense/internal/logging"
	"fjacquet/cashsense/internal/models"
	"fjacquet/cashsense/internal/normalizer"
	"fjacquet/cashsense/internal/storage"
	"fjacquet/cashsense/internal/validator"
)

// Mode selects where transaction data comes from.
type Mode string

const (
	// ModeProd serves only stored transactions.
	ModeProd Mode = "prod"
	// ModeDemo serves synthetically generated transactions.
	ModeDemo Mode = "demo"
)

// ErrUserIDRequired is returned when an operation is attempted without a
// user id.
var ErrUserIDRequired = errors.New("user id is required")

// TransactionStore is the persistence collaborator contract.
type TransactionStore interface {
	Store(ctx context.Context, userID string, tx models.Transaction, isManual bool) error
	Query(ctx context.Context, userID, minDate string, f storage.Filters) ([]models.Transaction, error)
	CountDemo(ctx context.Context, userID string) (int, error)
	DeleteDemo(ctx context.Context, userID string) error
}

// ProviderClient is the banking-aggregation collaborator contract. Raw
// records pass through the normalizer before entering the core type system.
type ProviderClient interface {
	Fetch(ctx context.Context, accessToken string, start, end time.Time) ([]map[string]any, error)
}

// TransactionService exposes transaction operations for one application
// instance.
type TransactionService struct {
	store     TransactionStore
	provider  ProviderClient
	generator *generator.Generator
	validator *validator.Validator
	cache     *cache.DemoCache
	log       logging.Logger
	now       func() time.Time

	mu   sync.RWMutex
	mode Mode
}

// Option configures a TransactionService.
type Option func(*TransactionService)

// WithProvider attaches a banking-aggregation client.
func WithProvider(p ProviderClient) Option {
	return func(s *TransactionService) { s.provider = p }
}

// WithMode sets the initial mode.
func WithMode(mode Mode) Option {
	return func(s *TransactionService) { s.mode = mode }
}

// WithCache replaces the demo-set cache.
func WithCache(c *cache.DemoCache) Option {
	return func(s *TransactionService) { s.cache = c }
}

// WithLogger sets the logger.
func WithLogger(log logging.Logger) Option {
	return func(s *TransactionService) { s.log = log }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *TransactionService) { s.now = now }
}

// New creates a TransactionService in prod mode.
func New(store TransactionStore, gen *generator.Generator, val *validator.Validator, opts ...Option) *TransactionService {
	s := &TransactionService{
		store:     store,
		generator: gen,
		validator: val,
		cache:     cache.NewDemoCache(128, time.Hour),
		log:       logging.GetLogger(),
		now:       time.Now,
		mode:      ModeProd,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the current mode.
func (s *TransactionService) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// IsDemoMode reports whether the service is in demo mode.
func (s *TransactionService) IsDemoMode() bool {
	return s.Mode() == ModeDemo
}

// SetDemoMode enables or disables demo mode and returns the new mode.
func (s *TransactionService) SetDemoMode(enable bool) Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enable {
		s.mode = ModeDemo
	} else {
		s.mode = ModeProd
	}
	return s.mode
}

// GetTransactions returns the user's transactions for the last `days` days,
// from generated demo data or from manually entered transactions depending
// on the mode.
func (s *TransactionService) GetTransactions(ctx context.Context, userID string, days int) ([]models.Transaction, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if s.IsDemoMode() {
		return s.getDemoTransactions(ctx, userID, days)
	}
	return s.GetManualTransactions(ctx, userID, days)
}

// GetManualTransactions returns the user's manually entered transactions for
// the last `days` days.
func (s *TransactionService) GetManualTransactions(ctx context.Context, userID string, days int) ([]models.Transaction, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.store.Query(ctx, userID, s.minDate(days), storage.Filters{IsManual: storage.Flag(true)})
}

// getDemoTransactions serves generated data, seeding the store on first
// access for the user.
func (s *TransactionService) getDemoTransactions(ctx context.Context, userID string, days int) ([]models.Transaction, error) {
	count, err := s.store.CountDemo(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if err := s.seedDemoTransactions(ctx, userID, days); err != nil {
			return nil, err
		}
	}
	// Demo data is served whole, not clipped to the requested window.
	return s.store.Query(ctx, userID, "", storage.Filters{IsTestData: storage.Flag(true)})
}

func (s *TransactionService) seedDemoTransactions(ctx context.Context, userID string, days int) error {
	set := s.cache.GetOrGenerate(userID, func() []models.Transaction {
		return s.generator.GenerateRange(days, 0)
	})
	for _, tx := range set.Transactions {
		if err := s.store.Store(ctx, userID, tx, false); err != nil {
			return fmt.Errorf("seed demo transactions: %w", err)
		}
	}
	s.log.Info("Generated and stored demo transactions",
		logging.F("user", userID),
		logging.F("count", len(set.Transactions)))
	return nil
}

// AddTransaction normalizes, validates and stores one transaction. Invalid
// records are rejected with the validator's typed error; they are never
// stored and never retried.
func (s *TransactionService) AddTransaction(ctx context.Context, userID string, raw any, isTest, isManual bool) (models.Transaction, error) {
	if userID == "" {
		return models.Transaction{}, ErrUserIDRequired
	}

	tx := normalizer.Normalize(raw)
	tx.IsTestData = isTest

	if err := s.validator.ValidateTransaction(tx); err != nil {
		return models.Transaction{}, fmt.Errorf("rejected transaction: %w", err)
	}

	if err := s.store.Store(ctx, userID, tx, isManual); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// ResetDemoTransactions deletes the user's generated demo transactions and
// regenerates a fresh set. Manually entered test transactions survive the
// reset. Returns all of the user's demo data after regeneration.
func (s *TransactionService) ResetDemoTransactions(ctx context.Context, userID string, days int) ([]models.Transaction, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	if err := s.store.DeleteDemo(ctx, userID); err != nil {
		return nil, err
	}
	s.cache.Invalidate(userID)

	if err := s.seedDemoTransactions(ctx, userID, days); err != nil {
		return nil, err
	}
	return s.store.Query(ctx, userID, "", storage.Filters{IsTestData: storage.Flag(true)})
}

// FetchProviderTransactions fetches raw records from the provider for the
// last `days` days and normalizes each into the canonical shape.
func (s *TransactionService) FetchProviderTransactions(ctx context.Context, accessToken string, days int) ([]models.Transaction, error) {
	if s.provider == nil {
		return nil, errors.New("no provider client configured")
	}

	end := s.now()
	start := end.AddDate(0, 0, -days)
	records, err := s.provider.Fetch(ctx, accessToken, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch provider transactions: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(records))
	for _, record := range records {
		transactions = append(transactions, normalizer.Normalize(record))
	}
	return transactions, nil
}

func (s *TransactionService) minDate(days int) string {
	return s.now().AddDate(0, 0, -days).Format(models.DateLayout)
}
