// Package workout turns the raw field/table output of the document service
// into structured workout records: field extraction and cleaning, workout
// type classification, and interval-table deduplication.
package workout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
)

// TableRow is an ordered mapping of column name to cell value. Column order
// follows insertion order so rows serialize the way the monitor lays them out.
type TableRow struct {
	cols []string
	vals map[string]string
}

// NewTableRow returns an empty row.
func NewTableRow() *TableRow {
	return &TableRow{vals: make(map[string]string)}
}

// Set stores a cell value, appending the column on first use.
func (r *TableRow) Set(col, val string) {
	if _, ok := r.vals[col]; !ok {
		r.cols = append(r.cols, col)
	}
	r.vals[col] = val
}

// Get returns a cell value by column name.
func (r *TableRow) Get(col string) (string, bool) {
	v, ok := r.vals[col]
	return v, ok
}

// Columns returns the column names in insertion order.
func (r *TableRow) Columns() []string { return r.cols }

// Len returns the number of columns.
func (r *TableRow) Len() int { return len(r.cols) }

// DataColumns returns names of columns holding non-empty values.
func (r *TableRow) DataColumns() []string {
	var out []string
	for _, c := range r.cols {
		if r.vals[c] != "" {
			out = append(out, c)
		}
	}
	return out
}

// Hash returns an order-independent digest of the row's (column, value)
// pairs, excluding the row-number column so re-numbered duplicates from
// overlapping captures still collide.
func (r *TableRow) Hash() uint64 {
	pairs := make([]string, 0, len(r.cols))
	for _, c := range r.cols {
		if c == "number" {
			continue
		}
		pairs = append(pairs, c+"\x00"+r.vals[c])
	}
	sort.Strings(pairs)

	h := fnv.New64a()
	for _, p := range pairs {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0xff})
	}
	return h.Sum64()
}

// MarshalJSON emits the row as a JSON object with columns in insertion order.
func (r *TableRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.vals[c])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a row. Column order follows the JSON object's key
// order.
func (r *TableRow) UnmarshalJSON(data []byte) error {
	r.cols = nil
	r.vals = make(map[string]string)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("workout: table row must be a JSON object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("workout: table row key must be a string")
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return err
		}
		r.Set(key, val)
	}
	_, err = dec.Token()
	return err
}

// Table is an ordered list of rows. Row 0 is always the header.
type Table []*TableRow

// DataRowCount returns the number of non-header rows.
func (t Table) DataRowCount() int {
	if len(t) <= 1 {
		return 0
	}
	return len(t) - 1
}

// WorkoutType is the inferred shape of a workout.
type WorkoutType string

const (
	TypeInterval       WorkoutType = "interval"
	TypeSingleDistance WorkoutType = "single_distance"
	TypeSingleTime     WorkoutType = "single_time"
)

// WorkoutRecord is the final structured output for one request.
type WorkoutRecord struct {
	WorkoutType       WorkoutType         `json:"workoutType"`
	TotalTime         string              `json:"totalTime,omitempty"`
	TotalDistance     int                 `json:"totalDistance,omitempty"`
	AverageSplit      string              `json:"averageSplit,omitempty"`
	AverageStrokeRate int                 `json:"averageStrokeRate,omitempty"`
	AverageHeartRate  int                 `json:"averageHeartRate,omitempty"`
	Date              string              `json:"date,omitempty"`
	WorkoutTitle      string              `json:"workoutTitle,omitempty"`
	Tables            map[string]Table    `json:"tables"`
	Fields            map[string]string   `json:"fields"`
	Lists             map[string][]string `json:"lists,omitempty"`
	StandardTable     Table               `json:"standardTable"`
}

// HasUsableData reports whether any table carries actual workout rows.
// A record without them signals the caller that the photo likely needs
// retaking.
func (r *WorkoutRecord) HasUsableData() bool {
	if r == nil {
		return false
	}
	if r.StandardTable.DataRowCount() > 0 {
		return true
	}
	for _, t := range r.Tables {
		if t.DataRowCount() > 0 {
			return true
		}
	}
	return false
}
