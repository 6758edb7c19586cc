// Package categories prints the loaded category schema
package categories

import (
	"fmt"

	"fjacquet/cashsense/cmd/root"
	"fjacquet/cashsense/internal/logging"
	"fjacquet/cashsense/internal/schema"

	"github.com/spf13/cobra"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List the loaded category schema",
	Long:  `List every category and subcategory id accepted by the schema validator.`,
	Run:   categoriesFunc,
}

func categoriesFunc(cmd *cobra.Command, args []string) {
	log := logging.NewLogrusAdapterFromLogger(root.Log)
	sch := schema.Load(root.Cfg.Schema.CategoriesFile, root.Cfg.Schema.FieldsFile, log)

	if len(sch.Categories) == 0 {
		root.Log.Warn("Category schema is empty")
		return
	}

	for _, categoryID := range sch.Categories.CategoryIDs() {
		category := sch.Categories[categoryID]
		fmt.Printf("%s (%s)\n", categoryID, category.Name)
		for _, subcategoryID := range category.SubcategoryIDs() {
			fmt.Printf("  %s (%s)\n", subcategoryID, category.Subcategories[subcategoryID].Name)
		}
	}
}
