package workout

import (
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
)

// TableShape distinguishes interval table layouts.
type TableShape string

const (
	// ShapeStandard has one row per interval, optionally followed by a
	// rest-summary row.
	ShapeStandard TableShape = "standard"

	// ShapeVariable alternates work and rest rows per interval.
	ShapeVariable TableShape = "variable"
)

// DedupeConfig carries the empirically tuned constants of shape inference
// and deduplication. The tolerances have no derivation beyond field testing;
// treat them as tunables.
type DedupeConfig struct {
	RestIndicators []string

	// ShapeScanRows is how many non-header rows are scanned for rest
	// indicators.
	ShapeScanRows int

	// MinPatternRows is the row count below which alternating-pattern
	// detection is not attempted.
	MinPatternRows int

	// PatternScanRows is how many non-header rows feed pattern detection.
	PatternScanRows int

	// SimilarityTolerance bounds how far same-series values may deviate
	// from their mean and still count as one level.
	SimilarityTolerance float64

	// MeanGapThreshold is the minimum relative difference between the two
	// series means for a pattern to count as alternating.
	MeanGapThreshold float64
}

// DefaultDedupeConfig returns the tuned defaults.
func DefaultDedupeConfig() DedupeConfig {
	return DedupeConfig{
		RestIndicators:      []string{"rest", "recovery", "rec", "r:", "r="},
		ShapeScanRows:       4,
		MinPatternRows:      5,
		PatternScanRows:     6,
		SimilarityTolerance: 0.2,
		MeanGapThreshold:    0.3,
	}
}

// Deduplicator removes duplicate interval rows introduced by overlapping
// multi-image capture.
type Deduplicator struct {
	cfg    DedupeConfig
	logger *slog.Logger
}

// NewDeduplicator creates a Deduplicator.
func NewDeduplicator(cfg DedupeConfig, logger *slog.Logger) *Deduplicator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deduplicator{cfg: cfg, logger: logger.With("component", "dedupe")}
}

// Apply deduplicates the record's interval tables in place, using the
// NumIntervals field as the expected interval count. Non-interval workouts
// and records without a parseable count pass through unchanged.
func (d *Deduplicator) Apply(rec *WorkoutRecord) {
	if rec == nil || rec.WorkoutType != TypeInterval {
		return
	}
	expected, ok := parseIntField(rec.Fields, "NumIntervals")
	if !ok || expected <= 0 {
		d.logger.Info("skipping deduplication, interval count unavailable")
		return
	}

	for _, name := range []string{"IntervalTable", "StandardTable"} {
		if t, present := rec.Tables[name]; present && len(t) > 0 {
			rec.Tables[name] = d.DedupeTable(t, expected)
		}
	}

	// Repoint the convenience alias at whichever table now has data.
	if t := rec.Tables["IntervalTable"]; len(t) > 0 {
		rec.StandardTable = t
	} else if t := rec.Tables["StandardTable"]; len(t) > 0 {
		rec.StandardTable = t
	}
}

// DedupeTable removes duplicate rows from one interval table. Row 0 is the
// header and is never touched. Tables already at or below the expected row
// count pass through unchanged, which makes deduplication idempotent.
func (d *Deduplicator) DedupeTable(rows Table, expected int) Table {
	if len(rows) <= 1 {
		return rows
	}

	shape := d.InferShape(rows)
	expectedTotal := 1 + expected
	if shape == ShapeVariable {
		expectedTotal = 1 + expected*2
	}
	if len(rows) <= expectedTotal {
		d.logger.Debug("no deduplication needed", "rows", len(rows), "expected", expectedTotal)
		return rows
	}

	d.logger.Info("deduplicating interval table",
		"shape", shape, "rows", len(rows), "expected", expectedTotal)
	if shape == ShapeStandard {
		return d.dedupeStandard(rows, expected)
	}
	return d.dedupeVariable(rows, expected)
}

// InferShape decides whether a table is one-row-per-interval or alternating
// work/rest pairs. Rest indicators in the leading rows decide immediately;
// otherwise an alternating two-level numeric pattern in distance or time
// columns marks the table variable.
func (d *Deduplicator) InferShape(rows Table) TableShape {
	if len(rows) <= 1 {
		return ShapeStandard
	}

	limit := min(1+d.cfg.ShapeScanRows, len(rows))
	for _, row := range rows[1:limit] {
		if d.hasRestIndicator(row) {
			return ShapeVariable
		}
	}

	if len(rows) >= d.cfg.MinPatternRows {
		var distances, times []float64
		limit := min(1+d.cfg.PatternScanRows, len(rows))
		for _, row := range rows[1:limit] {
			if v, ok := extractNumeric(row, []string{"distance", "meter", "meters", "m"}); ok {
				distances = append(distances, v)
			}
			if v, ok := extractTime(row, []string{"time", "duration", "mins", "min"}); ok {
				times = append(times, v)
			}
		}
		if d.isAlternating(distances) || d.isAlternating(times) {
			return ShapeVariable
		}
	}
	return ShapeStandard
}

func (d *Deduplicator) hasRestIndicator(row *TableRow) bool {
	for _, col := range row.Columns() {
		v, _ := row.Get(col)
		lower := strings.ToLower(v)
		for _, ind := range d.cfg.RestIndicators {
			if strings.Contains(lower, ind) {
				return true
			}
		}
	}
	return false
}

// isAlternating reports whether the series splits into two interleaved
// levels: each level's values close to their own mean, and the two means
// clearly apart.
func (d *Deduplicator) isAlternating(values []float64) bool {
	if len(values) < 4 {
		return false
	}
	var odd, even []float64
	for i, v := range values {
		if i%2 == 0 {
			odd = append(odd, v)
		} else {
			even = append(even, v)
		}
	}

	oddMean := mean(odd)
	evenMean := mean(even)
	if oddMean == 0 || evenMean == 0 {
		return false
	}
	for _, v := range odd {
		if math.Abs(v-oddMean)/oddMean >= d.cfg.SimilarityTolerance {
			return false
		}
	}
	for _, v := range even {
		if math.Abs(v-evenMean)/evenMean >= d.cfg.SimilarityTolerance {
			return false
		}
	}
	return math.Abs(oddMean-evenMean)/math.Max(oddMean, evenMean) > d.cfg.MeanGapThreshold
}

// dedupeStandard handles one-row-per-interval tables. A trailing rest-summary
// row is split off first, workout rows are deduplicated by hash, and an
// over-count is resolved by sorting on interval number and truncating.
func (d *Deduplicator) dedupeStandard(rows Table, expected int) Table {
	header := rows[0]
	workRows := rows[1:]

	var restRow *TableRow
	if len(workRows) > 0 && d.isRestSummary(workRows[len(workRows)-1]) {
		restRow = workRows[len(workRows)-1]
		workRows = workRows[:len(workRows)-1]
	}

	unique := dedupeByHash(workRows)
	if len(unique) > expected {
		sort.SliceStable(unique, func(i, j int) bool {
			return intervalNumber(unique[i]) < intervalNumber(unique[j])
		})
		unique = unique[:expected]
	}

	result := Table{header}
	result = append(result, unique...)
	if restRow != nil {
		result = append(result, restRow)
	}
	d.logger.Debug("standard table deduplicated",
		"work_rows", len(unique), "rest_summary", restRow != nil)
	return result
}

// isRestSummary detects a trailing summary row: either a "rest" marker in
// any cell, or data confined to a single distance-like column.
func (d *Deduplicator) isRestSummary(row *TableRow) bool {
	for _, col := range row.Columns() {
		v, _ := row.Get(col)
		if strings.Contains(strings.ToLower(v), "rest") {
			return true
		}
	}
	dataCols := row.DataColumns()
	if len(dataCols) == 1 {
		for _, name := range []string{"Meter", "meter", "distance", "Distance", "m"} {
			if strings.Contains(dataCols[0], name) {
				return true
			}
		}
	}
	return false
}

// dedupeVariable handles alternating work/rest tables by pairing rows and
// deduplicating on the work row's hash.
func (d *Deduplicator) dedupeVariable(rows Table, expected int) Table {
	header := rows[0]

	type pair struct {
		work *TableRow
		rest *TableRow
	}
	var pairs []pair

	i := 1
	for i < len(rows)-1 {
		work, next := rows[i], rows[i+1]
		if d.isRestRow(next) {
			pairs = append(pairs, pair{work: work, rest: next})
			i += 2
		} else {
			pairs = append(pairs, pair{work: work})
			i++
		}
	}
	if i < len(rows) {
		pairs = append(pairs, pair{work: rows[i]})
	}

	var unique []pair
	seen := make(map[uint64]bool)
	for _, p := range pairs {
		h := p.work.Hash()
		if !seen[h] {
			seen[h] = true
			unique = append(unique, p)
		}
	}

	if len(unique) > expected {
		sort.SliceStable(unique, func(i, j int) bool {
			return intervalNumber(unique[i].work) < intervalNumber(unique[j].work)
		})
		unique = unique[:expected]
	}

	result := Table{header}
	for _, p := range unique {
		result = append(result, p.work)
		if p.rest != nil {
			result = append(result, p.rest)
		}
	}
	d.logger.Debug("variable table deduplicated", "pairs", len(unique))
	return result
}

// isRestRow detects the rest half of a work/rest pair: a "rest" marker, or
// data in only one or two columns.
func (d *Deduplicator) isRestRow(row *TableRow) bool {
	for _, col := range row.Columns() {
		v, _ := row.Get(col)
		if strings.Contains(strings.ToLower(v), "rest") {
			return true
		}
	}
	n := len(row.DataColumns())
	return n >= 1 && n <= 2
}

func dedupeByHash(rows []*TableRow) []*TableRow {
	var unique []*TableRow
	seen := make(map[uint64]bool)
	for _, row := range rows {
		h := row.Hash()
		if !seen[h] {
			seen[h] = true
			unique = append(unique, row)
		}
	}
	return unique
}

// intervalNumber extracts an ordering key for a row: a numbered column if
// present, else digits from a time or distance column, else zero.
func intervalNumber(row *TableRow) int {
	for _, key := range []string{"number", "interval", "#", "no", "no."} {
		if v, ok := row.Get(key); ok && v != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	for _, key := range []string{"Time", "time", "Meter", "meter", "Distance", "distance"} {
		if v, ok := row.Get(key); ok && v != "" {
			if n, err := strconv.Atoi(digitsOf(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

// extractNumeric pulls a float from the first column whose lowercased name
// contains one of the keys.
func extractNumeric(row *TableRow, keys []string) (float64, bool) {
	for _, col := range row.Columns() {
		if !keyMatch(col, keys) {
			continue
		}
		v, _ := row.Get(col)
		if f, err := strconv.ParseFloat(numericOf(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// extractTime pulls a duration in seconds, handling MM:SS as well as plain
// numbers.
func extractTime(row *TableRow, keys []string) (float64, bool) {
	for _, col := range row.Columns() {
		if !keyMatch(col, keys) {
			continue
		}
		v, _ := row.Get(col)
		if v == "" {
			continue
		}
		if strings.Contains(v, ":") {
			parts := strings.Split(v, ":")
			if len(parts) == 2 {
				mins, errM := strconv.ParseFloat(parts[0], 64)
				secs, errS := strconv.ParseFloat(parts[1], 64)
				if errM == nil && errS == nil {
					return mins*60 + secs, true
				}
			}
		}
		if f, err := strconv.ParseFloat(numericOf(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func keyMatch(col string, keys []string) bool {
	lower := strings.ToLower(col)
	for _, k := range keys {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func numericOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
