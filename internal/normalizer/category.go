package normalizer

import (
	"strings"

	"fjacquet/cashsense/internal/models"
)

// categoryKind tags the recognized category input shapes, in priority order.
type categoryKind int

const (
	categoryAbsent categoryKind = iota
	categoryStructured
	categoryDelimited
	categorySegments
)

// categoryInput is the tagged union of category representations accepted by
// the normalizer.
type categoryInput struct {
	kind          categoryKind
	id            string
	subcategoryID string
	raw           string
	segments      []string
}

// parseCategoryInput classifies the category field of a raw input.
func parseCategoryInput(src Source) categoryInput {
	v, ok := src.Get("category")
	if !ok || v == nil {
		return categoryInput{kind: categoryAbsent}
	}

	switch c := v.(type) {
	case models.Category:
		return categoryInput{kind: categoryStructured, id: c.ID, subcategoryID: c.Subcategory.ID}
	case map[string]any:
		id, ok := c["id"].(string)
		if !ok || id == "" {
			return categoryInput{kind: categoryAbsent}
		}
		return categoryInput{kind: categoryStructured, id: id, subcategoryID: nestedSubcategoryID(c)}
	case string:
		if c == "" {
			return categoryInput{kind: categoryAbsent}
		}
		return categoryInput{kind: categoryDelimited, raw: c}
	case []string:
		if len(c) == 0 {
			return categoryInput{kind: categoryAbsent}
		}
		return categoryInput{kind: categorySegments, segments: c}
	case []any:
		segments := make([]string, 0, len(c))
		for _, seg := range c {
			if s, ok := seg.(string); ok {
				segments = append(segments, s)
			}
		}
		if len(segments) == 0 {
			return categoryInput{kind: categoryAbsent}
		}
		return categoryInput{kind: categorySegments, segments: segments}
	default:
		return categoryInput{kind: categoryAbsent}
	}
}

func nestedSubcategoryID(category map[string]any) string {
	sub, ok := category["subcategory"].(map[string]any)
	if !ok {
		return ""
	}
	id, _ := sub["id"].(string)
	return id
}

// normalize resolves the tagged input into the canonical nested category,
// applying one rule per variant.
func (ci categoryInput) normalize() models.Category {
	switch ci.kind {
	case categoryStructured:
		return canonicalCategory(ci.id, ci.subcategoryID)
	case categoryDelimited:
		parts := strings.Split(ci.raw, ", ")
		return categoryFromSegments(parts)
	case categorySegments:
		return categoryFromSegments(ci.segments)
	default:
		return canonicalCategory("", "")
	}
}

// categoryFromSegments maps a positional category path: index 0 is the
// category (lower-cased, spaces stripped), index 1 the subcategory.
func categoryFromSegments(segments []string) models.Category {
	id := ""
	if len(segments) > 0 {
		id = canonicalCategoryID(segments[0])
	}
	subcategoryID := ""
	if len(segments) > 1 {
		subcategoryID = segments[1]
	}
	return canonicalCategory(id, subcategoryID)
}

func canonicalCategoryID(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

func canonicalCategory(id, subcategoryID string) models.Category {
	if id == "" {
		id = models.CategoryOther
	}
	if subcategoryID == "" {
		subcategoryID = models.SubcategoryUnknown
	}
	return models.Category{
		ID:          id,
		Subcategory: models.Subcategory{ID: subcategoryID},
	}
}
