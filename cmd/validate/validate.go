// Package validate handles transaction validation commands
package validate

import (
	"encoding/json"
	"os"

	"fjacquet/cashsense/cmd/root"
	"fjacquet/cashsense/internal/common"
	"fjacquet/cashsense/internal/logging"
	"fjacquet/cashsense/internal/normalizer"
	"fjacquet/cashsense/internal/schema"
	"fjacquet/cashsense/internal/validator"

	"github.com/spf13/cobra"
)

var normalizeFirst bool

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate transaction records against the schema",
	Long: `Validate transaction records from a JSON or CSV file against the
transaction field schema and the category schema, reporting the violated
rule for every invalid record.`,
	Run: validateFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Input, "input", "i", "", "Input file with transaction records (required)")
	Cmd.Flags().StringVarP(&root.Format, "format", "f", "json", "Input format: json or csv")
	Cmd.Flags().BoolVarP(&normalizeFirst, "normalize", "n", false, "Normalize records into the canonical shape before validating")
	_ = Cmd.MarkFlagRequired("input")
}

func validateFunc(cmd *cobra.Command, args []string) {
	log := logging.NewLogrusAdapterFromLogger(root.Log)
	sch := schema.Load(root.Cfg.Schema.CategoriesFile, root.Cfg.Schema.FieldsFile, log)
	val := validator.New(sch)

	invalid := 0
	switch root.Format {
	case "json":
		records := readJSONRecords()
		for i, record := range records {
			var err error
			if normalizeFirst {
				err = val.ValidateTransaction(normalizer.Normalize(record))
			} else {
				err = val.Validate(record)
			}
			if err != nil {
				invalid++
				root.Log.Errorf("Record %d: %v", i, err)
			}
		}
		root.Log.Infof("Checked %d records", len(records))
	case "csv":
		transactions, err := common.ReadTransactionsFromCSV(root.Input)
		if err != nil {
			root.Log.Fatalf("Error reading CSV file: %v", err)
		}
		for i, tx := range transactions {
			if err := val.ValidateTransaction(tx); err != nil {
				invalid++
				root.Log.Errorf("Record %d (%s): %v", i, tx.ID, err)
			}
		}
		root.Log.Infof("Checked %d records", len(transactions))
	default:
		root.Log.Fatalf("Unsupported input format: %s (must be 'json' or 'csv')", root.Format)
	}

	if invalid > 0 {
		root.Log.Fatalf("%d invalid records", invalid)
	}
	root.Log.Info("All records are valid")
}

func readJSONRecords() []map[string]any {
	data, err := os.ReadFile(root.Input)
	if err != nil {
		root.Log.Fatalf("Error reading input file: %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		// Also accept a single record instead of an array
		var record map[string]any
		if err2 := json.Unmarshal(data, &record); err2 != nil {
			root.Log.Fatalf("Error parsing JSON input: %v", err)
		}
		records = []map[string]any{record}
	}
	return records
}
