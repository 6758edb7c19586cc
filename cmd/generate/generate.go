// Package generate handles synthetic transaction generation commands
package generate

import (
	"context"
	"encoding/json"
	"os"

	"fjacquet/cashsense/cmd/root"
	"fjacquet/cashsense/internal/common"
	"fjacquet/cashsense/internal/generator"
	"fjacquet/cashsense/internal/logging"
	"fjacquet/cashsense/internal/schema"
	"fjacquet/cashsense/internal/storage"

	"github.com/spf13/cobra"
)

var store bool

// Cmd represents the generate command
var Cmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic demo transactions",
	Long: `Generate schema-conformant synthetic transactions over a date range
ending today: recurring monthly income and bills, probabilistic seasonal
purchases, and random filler activity up to a minimum density per month.`,
	Run: generateFunc,
}

func init() {
	Cmd.Flags().IntVarP(&root.Days, "days", "d", 30, "Number of days to cover, ending today")
	Cmd.Flags().IntVarP(&root.Count, "count", "c", 0, "Exact number of transactions to produce (0 = no adjustment)")
	Cmd.Flags().StringVarP(&root.Output, "output", "o", "", "Output file (default: stdout)")
	Cmd.Flags().StringVarP(&root.Format, "format", "f", "json", "Output format: json or csv")
	Cmd.Flags().BoolVarP(&store, "store", "s", false, "Also store the generated transactions for --user")
}

func generateFunc(cmd *cobra.Command, args []string) {
	log := logging.NewLogrusAdapterFromLogger(root.Log)
	sch := schema.Load(root.Cfg.Schema.CategoriesFile, root.Cfg.Schema.FieldsFile, log)

	gen := generator.New(sch,
		generator.WithMinPerMonth(root.Cfg.Demo.MinPerMonth),
		generator.WithLogger(log))

	transactions := gen.GenerateRange(root.Days, root.Count)
	root.Log.Infof("Generated %d transactions over %d days", len(transactions), root.Days)

	if store {
		if root.User == "" {
			root.Log.Fatal("--store requires --user")
		}
		repo, err := storage.NewSQLiteRepository(root.Cfg.Database.Path, log)
		if err != nil {
			root.Log.Fatalf("Error opening database: %v", err)
		}
		defer func() { _ = repo.Close() }()

		ctx := context.Background()
		for _, tx := range transactions {
			if err := repo.Store(ctx, root.User, tx, false); err != nil {
				root.Log.Fatalf("Error storing transaction %s: %v", tx.ID, err)
			}
		}
		root.Log.Infof("Stored %d transactions for user %s", len(transactions), root.User)
	}

	switch root.Format {
	case "csv":
		if root.Output == "" {
			root.Log.Fatal("CSV output requires --output")
		}
		if err := common.WriteTransactionsToCSV(transactions, root.Output); err != nil {
			root.Log.Fatalf("Error writing CSV: %v", err)
		}
	case "json":
		data, err := json.MarshalIndent(transactions, "", "  ")
		if err != nil {
			root.Log.Fatalf("Error encoding JSON: %v", err)
		}
		if root.Output == "" {
			os.Stdout.Write(append(data, '\n'))
			return
		}
		if err := os.WriteFile(root.Output, data, 0o644); err != nil {
			root.Log.Fatalf("Error writing output file: %v", err)
		}
	default:
		root.Log.Fatalf("Unsupported output format: %s (must be 'json' or 'csv')", root.Format)
	}

	if root.Output != "" {
		root.Log.Infof("Wrote %s", root.Output)
	}
}
