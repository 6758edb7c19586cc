// Package storage persists transactions in SQLite. The core generator and
// validator never touch this package; it exists behind the service layer's
// TransactionStore interface.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/cashsense/internal/logging"
	"fjacquet/cashsense/internal/models"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// Filters narrows a transaction query by origin flags. Nil pointers leave a
// flag unconstrained.
type Filters struct {
	IsTestData *bool
	IsManual   *bool
}

// Flag returns a pointer suitable for Filters fields.
func Flag(v bool) *bool { return &v }

// SQLiteRepository stores transactions in a SQLite database.
type SQLiteRepository struct {
	db  *sql.DB
	log logging.Logger
}

// NewSQLiteRepository opens (creating if necessary) the database at dbPath
// and applies migrations.
func NewSQLiteRepository(dbPath string, log logging.Logger) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if log == nil {
		log = logging.GetLogger()
	}

	return &SQLiteRepository{db: db, log: log}, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Store persists one canonical transaction for a user. The canonical JSON
// form is kept alongside the flattened columns.
func (r *SQLiteRepository) Store(ctx context.Context, userID string, tx models.Transaction, isManual bool) error {
	rawData, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("marshal transaction %s: %w", tx.ID, err)
	}

	amount, _ := tx.Amount.Float64()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO transactions
			(id, user_id, date, merchant_name, amount, payment_channel, pending,
			 category, subcategory, is_test_data, is_manual, raw_data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, userID, tx.Date, tx.MerchantName, amount, tx.PaymentChannel, tx.Pending,
		tx.Category.ID, tx.Category.Subcategory.ID, tx.IsTestData, isManual, string(rawData))
	if err != nil {
		return fmt.Errorf("store transaction %s: %w", tx.ID, err)
	}

	r.log.Debug("Transaction stored",
		logging.F("id", tx.ID),
		logging.F("user", userID),
		logging.F("date", tx.Date))

	return nil
}

// Query returns the user's transactions on or after minDate (YYYY-MM-DD),
// narrowed by the given flags, most recent first.
func (r *SQLiteRepository) Query(ctx context.Context, userID, minDate string, f Filters) ([]models.Transaction, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, date, merchant_name, amount, payment_channel, pending,
		       category, subcategory, is_test_data
		FROM transactions
		WHERE user_id = ? AND date >= ?`)
	args := []any{userID, minDate}

	if f.IsTestData != nil {
		query.WriteString(" AND is_test_data = ?")
		args = append(args, *f.IsTestData)
	}
	if f.IsManual != nil {
		query.WriteString(" AND is_manual = ?")
		args = append(args, *f.IsManual)
	}
	query.WriteString(" ORDER BY date DESC, id")

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions for user %s: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions for user %s: %w", userID, err)
	}

	return transactions, nil
}

// CountDemo returns how many generated demo transactions the user has.
func (r *SQLiteRepository) CountDemo(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM transactions
		WHERE user_id = ? AND is_test_data = 1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count demo transactions for user %s: %w", userID, err)
	}
	return count, nil
}

// DeleteDemo removes the user's generated demo transactions. Manually
// entered test transactions are kept.
func (r *SQLiteRepository) DeleteDemo(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM transactions
		WHERE user_id = ? AND is_test_data = 1 AND is_manual = 0`, userID)
	if err != nil {
		return fmt.Errorf("delete demo transactions for user %s: %w", userID, err)
	}
	return nil
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var (
		tx       models.Transaction
		amount   float64
		category string
		subcat   string
	)
	err := rows.Scan(&tx.ID, &tx.Date, &tx.MerchantName, &amount, &tx.PaymentChannel,
		&tx.Pending, &category, &subcat, &tx.IsTestData)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	tx.Amount = decimal.NewFromFloat(amount)
	tx.Category = models.Category{
		ID:          category,
		Subcategory: models.Subcategory{ID: subcat},
	}

	// Rows written before the channel column was populated fall back to the
	// sign heuristic.
	if tx.PaymentChannel == "" {
		if tx.Amount.IsNegative() {
			tx.PaymentChannel = models.ChannelOnline
		} else {
			tx.PaymentChannel = models.ChannelInStore
		}
	}

	return tx, nil
}
