// Package common provides shared CSV read/write helpers.
package common

import (
	"fmt"
	"os"

	"fjacquet/cashsense/internal/logging"
	"fjacquet/cashsense/internal/models"

	"github.com/gocarina/gocsv"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// SetDelimiter sets the delimiter used for CSV output.
func SetDelimiter(delim rune) {
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// ReadTransactionsFromCSV reads flattened transaction rows from a CSV file
// and rebuilds canonical transactions.
func ReadTransactionsFromCSV(filePath string) ([]models.Transaction, error) {
	log.Info("Reading transactions from CSV file", logging.F("file", filePath))

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []models.TransactionCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, row.ToTransaction())
	}

	log.Info("Successfully read CSV data", logging.F("count", len(transactions)))
	return transactions, nil
}

// WriteTransactionsToCSV writes transactions to a CSV file in the flattened
// row format.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.Info("Writing transactions to CSV file",
		logging.F("file", csvFile),
		logging.F("count", len(transactions)))

	rows := make([]models.TransactionCSVRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, tx.ToCSVRow())
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}

	return nil
}
