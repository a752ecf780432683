package testutil

import (
	"fmt"

	"github.com/MeKo-Tech/ergsnap/internal/ocr"
)

// StringField builds a scalar string field as returned by the document
// analysis service.
func StringField(s string) ocr.FieldValue {
	return ocr.FieldValue{Type: "string", ValueString: s, Confidence: 0.95}
}

// RowObject builds one table row object from alternating column name and
// value arguments.
func RowObject(pairs ...string) ocr.FieldValue {
	obj := make(map[string]ocr.FieldValue, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		obj[pairs[i]] = StringField(pairs[i+1])
	}
	return ocr.FieldValue{Type: "object", ValueObject: obj}
}

// TableField builds an array field whose items are row objects.
func TableField(rows ...ocr.FieldValue) ocr.FieldValue {
	return ocr.FieldValue{Type: "array", ValueArray: rows}
}

// IntervalTableField builds a typical interval table: a header row naming the
// given columns and count data rows with synthetic values.
func IntervalTableField(columns []string, count int) ocr.FieldValue {
	rows := make([]ocr.FieldValue, 0, count+1)
	header := make([]string, 0, len(columns)*2)
	for _, c := range columns {
		header = append(header, c, c)
	}
	rows = append(rows, RowObject(header...))
	for i := 1; i <= count; i++ {
		pairs := make([]string, 0, len(columns)*2)
		for _, c := range columns {
			pairs = append(pairs, c, fmt.Sprintf("%d", i*100))
		}
		rows = append(rows, RowObject(pairs...))
	}
	return TableField(rows...)
}

// AnalyzeResultWithFields wraps fields into a single-document analysis
// result the way the service returns it.
func AnalyzeResultWithFields(fields map[string]ocr.FieldValue) *ocr.AnalyzeResult {
	return &ocr.AnalyzeResult{
		ModelID: ocr.DefaultModelID,
		Documents: []ocr.Document{
			{DocType: "erg-monitor", Fields: fields, Confidence: 0.9},
		},
	}
}
