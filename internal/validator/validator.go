// Package validator checks canonical-shaped transaction records against the
// declared field schema and the category schema. Validation guarantees
// domain membership; shape is the normalizer's job and must happen first for
// inputs that are not already canonical.
package validator

import (
	"encoding/json"
	"sort"

	"fjacquet/cashsense/internal/models"
	"fjacquet/cashsense/internal/schema"
	"fjacquet/cashsense/internal/schemaerr"

	"github.com/shopspring/decimal"
)

// Validator validates transaction records against a loaded schema.
type Validator struct {
	schema *schema.Schema
}

// New creates a Validator bound to the given schema.
func New(sch *schema.Schema) *Validator {
	return &Validator{schema: sch}
}

// Validate checks a record against the field and category schemas. The record
// is never mutated; on success it is accepted as-is. Failures carry a typed
// error naming the violated rule.
func (v *Validator) Validate(record any) error {
	m, ok := record.(map[string]any)
	if !ok {
		return &schemaerr.SchemaError{Reason: "transaction must be a mapping"}
	}

	// Fields are checked in sorted order so the first reported violation is
	// deterministic.
	fields := make([]string, 0, len(v.schema.Fields))
	for field := range v.schema.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value, present := m[field]
		if !present {
			return &schemaerr.MissingFieldError{Field: field}
		}

		switch expected := v.schema.Fields[field]; expected {
		case schema.FieldString:
			if _, ok := value.(string); !ok {
				return &schemaerr.TypeMismatchError{Field: field, Expected: expected}
			}
		case schema.FieldNumber:
			if !isNumber(value) {
				return &schemaerr.TypeMismatchError{Field: field, Expected: expected}
			}
		case schema.FieldBoolean:
			if _, ok := value.(bool); !ok {
				return &schemaerr.TypeMismatchError{Field: field, Expected: expected}
			}
		case schema.FieldObject:
			if field == "category" {
				if err := v.validateCategory(value); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// ValidateTransaction validates a canonical transaction value.
func (v *Validator) ValidateTransaction(tx models.Transaction) error {
	return v.Validate(tx.ToMap())
}

func (v *Validator) validateCategory(value any) error {
	category, ok := value.(map[string]any)
	if !ok {
		return &schemaerr.MalformedCategoryError{Reason: "'category' must be a mapping with an 'id' field"}
	}

	id, ok := category["id"].(string)
	if !ok {
		return &schemaerr.MalformedCategoryError{Reason: "'category' must be a mapping with an 'id' field"}
	}

	if !v.schema.Categories.HasCategory(id) {
		return &schemaerr.UnknownCategoryError{ID: id}
	}

	subcategory, ok := category["subcategory"].(map[string]any)
	if !ok {
		return &schemaerr.MalformedCategoryError{Reason: "'category' is missing 'subcategory' with an 'id' field"}
	}
	subcategoryID, ok := subcategory["id"].(string)
	if !ok {
		return &schemaerr.MalformedCategoryError{Reason: "'category' is missing 'subcategory' with an 'id' field"}
	}

	if !v.schema.Categories.HasSubcategory(id, subcategoryID) {
		return &schemaerr.UnknownSubcategoryError{CategoryID: id, ID: subcategoryID}
	}

	return nil
}

func isNumber(value any) bool {
	switch n := value.(type) {
	case decimal.Decimal, float64, float32, int, int64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	default:
		return false
	}
}
