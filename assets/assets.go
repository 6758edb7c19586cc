// Package assets embeds the default schema definitions shipped with the
// application.
package assets

import _ "embed"

// DefaultCategories is the built-in category schema in YAML form.
//
//go:embed categories.yaml
var DefaultCategories []byte

// DefaultTransactionFields is the built-in transaction field schema in YAML form.
//
//go:embed transaction.yaml
var DefaultTransactionFields []byte
