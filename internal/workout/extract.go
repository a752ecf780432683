package workout

import (
	"sort"
	"strings"

	"github.com/MeKo-Tech/ergsnap/internal/ocr"
)

// misreadGlyph is what this OCR engine class produces for the letter "r" in
// certain monitor fonts.
const misreadGlyph = "¥"

// CleanFieldValue normalizes one extracted string: the misread currency glyph
// becomes "r" and surrounding whitespace is trimmed. Idempotent.
func CleanFieldValue(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, misreadGlyph, "r"))
}

// Extraction is the flattened view of an analyze result: scalar fields,
// row-structured tables, and scalar arrays.
type Extraction struct {
	Fields map[string]string
	Tables map[string]Table
	Lists  map[string][]string
}

// Extract flattens the first document's field map. A string field contributes
// its cleaned content; an array of row-objects contributes a table whose
// first row is the monitor's own header row; an array of scalars contributes
// a string list. Missing or malformed structure is skipped, never an error.
func Extract(result *ocr.AnalyzeResult) Extraction {
	ext := Extraction{
		Fields: make(map[string]string),
		Tables: make(map[string]Table),
		Lists:  make(map[string][]string),
	}
	if result == nil || len(result.Documents) == 0 {
		return ext
	}

	for name, field := range result.Documents[0].Fields {
		switch {
		case len(field.ValueArray) > 0:
			rows, list := extractArray(field.ValueArray)
			if len(rows) > 0 {
				ext.Tables[name] = rows
			}
			if len(list) > 0 {
				ext.Lists[name] = list
			}
		default:
			if text := CleanFieldValue(field.Text()); text != "" {
				ext.Fields[name] = text
			}
		}
	}
	return ext
}

// extractArray splits an array field into structured rows and scalar items.
// Row 0 of a table is the monitor's own header row, carried through as-is.
func extractArray(items []ocr.FieldValue) (Table, []string) {
	var rows Table
	var list []string

	for _, item := range items {
		if len(item.ValueObject) > 0 {
			row := NewTableRow()
			// Column order inside a valueObject is lost on the wire, so
			// iterate sorted for deterministic output.
			for _, col := range sortedKeys(item.ValueObject) {
				row.Set(col, CleanFieldValue(item.ValueObject[col].Text()))
			}
			rows = append(rows, row)
			continue
		}
		if text := CleanFieldValue(item.Text()); text != "" {
			list = append(list, text)
		}
	}
	return rows, list
}

func sortedKeys(m map[string]ocr.FieldValue) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
