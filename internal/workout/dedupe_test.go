package workout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerRow(cols ...string) *TableRow {
	row := NewTableRow()
	for _, c := range cols {
		row.Set(c, c)
	}
	return row
}

func workRow(number, time, meter, spm string) *TableRow {
	row := NewTableRow()
	row.Set("number", number)
	row.Set("time", time)
	row.Set("meter", meter)
	row.Set("spm", spm)
	return row
}

func textRow(col, val string) *TableRow {
	row := NewTableRow()
	row.Set(col, val)
	return row
}

// standardOverlap builds the capture artifact deduplication exists for: two
// photos of a 4-interval screen whose overlap repeats every interval with
// shifted row numbers.
func standardOverlap() Table {
	return Table{
		headerRow("number", "time", "meter", "spm"),
		workRow("1", "1:45.0", "500", "28"),
		workRow("2", "1:46.2", "500", "27"),
		workRow("3", "1:44.8", "500", "29"),
		workRow("4", "1:45.5", "500", "28"),
		workRow("5", "1:45.0", "500", "28"),
		workRow("6", "1:46.2", "500", "27"),
		workRow("7", "1:44.8", "500", "29"),
		workRow("8", "1:45.5", "500", "28"),
	}
}

func TestDedupeStandardTable(t *testing.T) {
	d := NewDeduplicator(DefaultDedupeConfig(), nil)

	result := d.DedupeTable(standardOverlap(), 4)
	require.Len(t, result, 5)
	assert.Equal(t, 4, result.DataRowCount())

	// Order of first occurrence survives.
	for i, want := range []string{"1:45.0", "1:46.2", "1:44.8", "1:45.5"} {
		v, ok := result[i+1].Get("time")
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	d := NewDeduplicator(DefaultDedupeConfig(), nil)

	once := d.DedupeTable(standardOverlap(), 4)
	twice := d.DedupeTable(once, 4)
	assert.Equal(t, once, twice)
}

func TestDedupePreservesRestSummary(t *testing.T) {
	d := NewDeduplicator(DefaultDedupeConfig(), nil)

	rows := standardOverlap()
	rows = append(rows, textRow("time", "Rest 2:00"))

	result := d.DedupeTable(rows, 4)
	require.Len(t, result, 6)
	v, _ := result[5].Get("time")
	assert.Equal(t, "Rest 2:00", v)
}

func TestDedupeUnderCountPassthrough(t *testing.T) {
	d := NewDeduplicator(DefaultDedupeConfig(), nil)

	rows := Table{
		headerRow("number", "time", "meter", "spm"),
		workRow("1", "1:45.0", "500", "28"),
		workRow("2", "1:46.2", "500", "27"),
	}
	result := d.DedupeTable(rows, 4)
	assert.Equal(t, rows, result)

	assert.Empty(t, d.DedupeTable(Table{}, 4))
}

func TestDedupeTruncatesDistinctOverCount(t *testing.T) {
	d := NewDeduplicator(DefaultDedupeConfig(), nil)

	// Six genuinely distinct rows against four expected intervals: the four
	// lowest-numbered rows win.
	rows := Table{
		headerRow("number", "time", "meter", "spm"),
		workRow("5", "1:49.0", "500", "26"),
		workRow("1", "1:45.0", "500", "28"),
		workRow("2", "1:46.2", "500", "27"),
		workRow("6", "1:50.1", "500", "25"),
		workRow("3", "1:44.8", "500", "29"),
		workRow("4", "1:45.5", "500", "28"),
	}
	result := d.DedupeTable(rows, 4)
	require.Len(t, result, 5)
	for i, want := range []string{"1", "2", "3", "4"} {
		v, _ := result[i+1].Get("number")
		assert.Equal(t, want, v)
	}
}

func TestDedupeVariableTable(t *testing.T) {
	d := NewDeduplicator(DefaultDedupeConfig(), nil)

	work1 := workRow("1", "4:00.0", "1000", "26")
	rest1 := textRow("time", "Rest 1:00")
	work2 := workRow("2", "4:05.2", "1000", "25")
	rest2 := textRow("time", "Rest 1:00")
	work1dup := workRow("3", "4:00.0", "1000", "26")
	rest1dup := textRow("time", "Rest 1:00")

	rows := Table{
		headerRow("number", "time", "meter", "spm"),
		work1, rest1, work2, rest2, work1dup, rest1dup,
	}

	result := d.DedupeTable(rows, 2)
	require.Len(t, result, 5)
	assert.Same(t, work1, result[1])
	assert.Same(t, rest1, result[2])
	assert.Same(t, work2, result[3])
	assert.Same(t, rest2, result[4])
}

func TestInferShapeRestIndicator(t *testing.T) {
	d := NewDeduplicator(DefaultDedupeConfig(), nil)

	rows := Table{
		headerRow("time", "meter"),
		workRow("1", "4:00.0", "1000", "26"),
		textRow("time", "Recovery 1:00"),
	}
	assert.Equal(t, ShapeVariable, d.InferShape(rows))

	assert.Equal(t, ShapeStandard, d.InferShape(standardOverlap()))
	assert.Equal(t, ShapeStandard, d.InferShape(Table{headerRow("time")}))
}

func TestInferShapeAlternatingPattern(t *testing.T) {
	d := NewDeduplicator(DefaultDedupeConfig(), nil)

	// No rest markers, but meters alternate between two clearly separated
	// levels. That is a work/rest layout in disguise.
	mk := func(meter string) *TableRow {
		row := NewTableRow()
		row.Set("meter", meter)
		return row
	}
	rows := Table{
		headerRow("meter"),
		mk("500"), mk("100"), mk("500"), mk("100"), mk("500"), mk("100"),
	}
	assert.Equal(t, ShapeVariable, d.InferShape(rows))

	// Uniform meters stay standard.
	rows = Table{
		headerRow("meter"),
		mk("500"), mk("500"), mk("500"), mk("500"), mk("500"), mk("500"),
	}
	assert.Equal(t, ShapeStandard, d.InferShape(rows))
}

func TestApplySkipsNonInterval(t *testing.T) {
	d := NewDeduplicator(DefaultDedupeConfig(), nil)

	rows := standardOverlap()
	rec := &WorkoutRecord{
		WorkoutType: TypeSingleDistance,
		Fields:      map[string]string{"NumIntervals": "4"},
		Tables:      map[string]Table{"IntervalTable": rows},
	}
	d.Apply(rec)
	assert.Len(t, rec.Tables["IntervalTable"], 9, "non-interval records pass through")

	d.Apply(nil)
}

func TestApplySkipsWithoutIntervalCount(t *testing.T) {
	d := NewDeduplicator(DefaultDedupeConfig(), nil)

	rec := &WorkoutRecord{
		WorkoutType: TypeInterval,
		Fields:      map[string]string{},
		Tables:      map[string]Table{"IntervalTable": standardOverlap()},
	}
	d.Apply(rec)
	assert.Len(t, rec.Tables["IntervalTable"], 9)
}

func TestApplyDeduplicatesAndRepointsAlias(t *testing.T) {
	d := NewDeduplicator(DefaultDedupeConfig(), nil)

	rec := &WorkoutRecord{
		WorkoutType: TypeInterval,
		Fields:      map[string]string{"NumIntervals": "4"},
		Tables:      map[string]Table{"IntervalTable": standardOverlap()},
	}
	d.Apply(rec)

	require.Len(t, rec.Tables["IntervalTable"], 5)
	assert.Equal(t, rec.Tables["IntervalTable"], rec.StandardTable)
}
