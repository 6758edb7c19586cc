// Package schemaerr defines the typed errors produced by schema validation.
// Each violated rule maps to its own error type so callers can report
// precisely which field or category was invalid.
package schemaerr

import "fmt"

// SchemaError represents a record that is not a mapping at all.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation: %s", e.Reason)
}

// MissingFieldError represents a required field absent from the record.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("schema violation: required field '%s' is missing", e.Field)
}

// TypeMismatchError represents a field whose value does not match its
// declared primitive type.
type TypeMismatchError struct {
	Field    string
	Expected string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("schema violation: field '%s' must be a %s", e.Field, e.Expected)
}

// MalformedCategoryError represents a category value that does not have the
// canonical {id, subcategory: {id}} shape.
type MalformedCategoryError struct {
	Reason string
}

func (e *MalformedCategoryError) Error() string {
	return fmt.Sprintf("schema violation: malformed category: %s", e.Reason)
}

// UnknownCategoryError represents a category id absent from the category
// schema.
type UnknownCategoryError struct {
	ID string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("schema violation: unknown category '%s'", e.ID)
}

// UnknownSubcategoryError represents a subcategory id absent from its parent
// category's subcategory set.
type UnknownSubcategoryError struct {
	CategoryID string
	ID         string
}

func (e *UnknownSubcategoryError) Error() string {
	return fmt.Sprintf("schema violation: unknown subcategory '%s' for category '%s'", e.ID, e.CategoryID)
}
