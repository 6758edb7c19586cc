// Package demo manages stored demo transaction data
package demo

import (
	"context"
	"encoding/json"
	"os"

	"fjacquet/cashsense/cmd/root"
	"fjacquet/cashsense/internal/generator"
	"fjacquet/cashsense/internal/logging"
	"fjacquet/cashsense/internal/schema"
	"fjacquet/cashsense/internal/service"
	"fjacquet/cashsense/internal/storage"
	"fjacquet/cashsense/internal/validator"

	"github.com/spf13/cobra"
)

// Cmd represents the demo command group
var Cmd = &cobra.Command{
	Use:   "demo",
	Short: "Manage stored demo transaction data",
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete and regenerate a user's demo transactions",
	Long: `Delete the user's generated demo transactions and produce a fresh set.
Manually entered test transactions are kept.`,
	Run: resetFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's transactions for the configured mode",
	Long: `List the user's transactions. In demo mode (app.mode) the stored demo
set is served, generating it on first access; in prod mode only manually
entered transactions within the window are served.`,
	Run: listFunc,
}

func init() {
	resetCmd.Flags().IntVarP(&root.Days, "days", "d", 30, "Number of days of demo data to generate")
	listCmd.Flags().IntVarP(&root.Days, "days", "d", 30, "Number of days to list")
	Cmd.AddCommand(resetCmd)
	Cmd.AddCommand(listCmd)
}

func resetFunc(cmd *cobra.Command, args []string) {
	if root.User == "" {
		root.Log.Fatal("User id is required (--user)")
	}

	log := logging.NewLogrusAdapterFromLogger(root.Log)
	sch := schema.Load(root.Cfg.Schema.CategoriesFile, root.Cfg.Schema.FieldsFile, log)

	repo, err := storage.NewSQLiteRepository(root.Cfg.Database.Path, log)
	if err != nil {
		root.Log.Fatalf("Error opening database: %v", err)
	}
	defer func() { _ = repo.Close() }()

	gen := generator.New(sch,
		generator.WithMinPerMonth(root.Cfg.Demo.MinPerMonth),
		generator.WithLogger(log))

	svc := service.New(repo, gen, validator.New(sch),
		service.WithMode(service.ModeDemo),
		service.WithLogger(log))

	transactions, err := svc.ResetDemoTransactions(context.Background(), root.User, root.Days)
	if err != nil {
		root.Log.Fatalf("Error resetting demo transactions: %v", err)
	}
	root.Log.Infof("Reset demo data for user %s: %d transactions", root.User, len(transactions))
}

func listFunc(cmd *cobra.Command, args []string) {
	if root.User == "" {
		root.Log.Fatal("User id is required (--user)")
	}

	log := logging.NewLogrusAdapterFromLogger(root.Log)
	sch := schema.Load(root.Cfg.Schema.CategoriesFile, root.Cfg.Schema.FieldsFile, log)

	repo, err := storage.NewSQLiteRepository(root.Cfg.Database.Path, log)
	if err != nil {
		root.Log.Fatalf("Error opening database: %v", err)
	}
	defer func() { _ = repo.Close() }()

	gen := generator.New(sch,
		generator.WithMinPerMonth(root.Cfg.Demo.MinPerMonth),
		generator.WithLogger(log))

	svc := service.New(repo, gen, validator.New(sch),
		service.WithMode(service.Mode(root.Cfg.App.Mode)),
		service.WithLogger(log))

	transactions, err := svc.GetTransactions(context.Background(), root.User, root.Days)
	if err != nil {
		root.Log.Fatalf("Error listing transactions: %v", err)
	}

	data, err := json.MarshalIndent(transactions, "", "  ")
	if err != nil {
		root.Log.Fatalf("Error encoding JSON: %v", err)
	}
	os.Stdout.Write(append(data, '\n'))
}
