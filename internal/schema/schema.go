// Package schema loads and exposes the category schema and the transaction
// field schema. Both are loaded once at startup and treated as immutable for
// the process lifetime; a missing or malformed source degrades to an empty
// schema rather than failing startup.
package schema

import (
	"os"
	"path/filepath"
	"sort"

	"fjacquet/cashsense/assets"
	"fjacquet/cashsense/internal/logging"
	"fjacquet/cashsense/internal/models"

	"gopkg.in/yaml.v3"
)

// Field types declared by the transaction field schema.
const (
	FieldString  = "string"
	FieldNumber  = "number"
	FieldBoolean = "boolean"
	FieldObject  = "object"
)

// SubcategoryConfig describes a single subcategory.
type SubcategoryConfig struct {
	Name string `yaml:"name"`
}

// CategoryConfig describes a category and its closed set of subcategories.
type CategoryConfig struct {
	Name          string                       `yaml:"name"`
	Subcategories map[string]SubcategoryConfig `yaml:"subcategories"`
}

// CategorySchema maps category ids to their descriptors.
type CategorySchema map[string]CategoryConfig

// FieldSchema maps transaction field names to their declared primitive type.
type FieldSchema map[string]string

// Schema bundles the two schema halves used by validation and generation.
type Schema struct {
	Categories CategorySchema
	Fields     FieldSchema
}

type categoriesFile struct {
	Categories CategorySchema `yaml:"categories"`
}

type fieldsFile struct {
	Fields FieldSchema `yaml:"fields"`
}

// Load reads both schema files. An empty path selects the embedded default
// for that half; a missing or malformed file yields an empty schema half and
// a logged warning.
func Load(categoriesPath, fieldsPath string, log logging.Logger) *Schema {
	return &Schema{
		Categories: LoadCategories(categoriesPath, log),
		Fields:     LoadFields(fieldsPath, log),
	}
}

// Default returns the schema embedded in the binary.
func Default() *Schema {
	log := logging.GetLogger()
	return &Schema{
		Categories: parseCategories(assets.DefaultCategories, "embedded categories", log),
		Fields:     parseFields(assets.DefaultTransactionFields, "embedded transaction fields", log),
	}
}

// LoadCategories loads the category schema from a YAML file. An empty path
// selects the embedded default.
func LoadCategories(path string, log logging.Logger) CategorySchema {
	if path == "" {
		return parseCategories(assets.DefaultCategories, "embedded categories", log)
	}
	data, ok := readSchemaFile(path, log)
	if !ok {
		return CategorySchema{}
	}
	return parseCategories(data, path, log)
}

// LoadFields loads the transaction field schema from a YAML file. An empty
// path selects the embedded default.
func LoadFields(path string, log logging.Logger) FieldSchema {
	if path == "" {
		return parseFields(assets.DefaultTransactionFields, "embedded transaction fields", log)
	}
	data, ok := readSchemaFile(path, log)
	if !ok {
		return FieldSchema{}
	}
	return parseFields(data, path, log)
}

func parseCategories(data []byte, source string, log logging.Logger) CategorySchema {
	var f categoriesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		log.WithError(err).Warn("Invalid category schema, continuing with empty schema",
			logging.F("source", source))
		return CategorySchema{}
	}
	if f.Categories == nil {
		return CategorySchema{}
	}
	return f.Categories
}

func parseFields(data []byte, source string, log logging.Logger) FieldSchema {
	var f fieldsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		log.WithError(err).Warn("Invalid field schema, continuing with empty schema",
			logging.F("source", source))
		return FieldSchema{}
	}
	if f.Fields == nil {
		return FieldSchema{}
	}
	return f.Fields
}

func readSchemaFile(path string, log logging.Logger) ([]byte, bool) {
	resolved, err := resolveSchemaFile(path)
	if err != nil {
		log.Warn("Schema file not found, continuing with empty schema",
			logging.F("file", path))
		return nil, false
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		log.WithError(err).Warn("Cannot read schema file, continuing with empty schema",
			logging.F("file", resolved))
		return nil, false
	}
	return data, true
}

// resolveSchemaFile looks for a schema file in standard locations.
func resolveSchemaFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("schemas", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		configPath := filepath.Join(homeDir, ".config", "cashsense", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// HasCategory reports whether the category id exists in the schema.
func (s CategorySchema) HasCategory(id string) bool {
	_, ok := s[id]
	return ok
}

// HasSubcategory reports whether the subcategory id is accepted under the
// given category. The "unknown" subcategory is always accepted.
func (s CategorySchema) HasSubcategory(categoryID, subcategoryID string) bool {
	if subcategoryID == models.SubcategoryUnknown {
		return true
	}
	category, ok := s[categoryID]
	if !ok {
		return false
	}
	_, ok = category.Subcategories[subcategoryID]
	return ok
}

// CategoryIDs returns the category ids in deterministic order.
func (s CategorySchema) CategoryIDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SubcategoryIDs returns the subcategory ids of a category in deterministic
// order.
func (c CategoryConfig) SubcategoryIDs() []string {
	ids := make([]string, 0, len(c.Subcategories))
	for id := range c.Subcategories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
