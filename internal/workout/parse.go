package workout

import (
	"log/slog"
	"strconv"
)

// Alternate field name chains for the summary values. Custom models drift in
// naming across versions, so each value is resolved through a fallback chain.
var (
	totalTimeFields     = []string{"TotalWorkTime", "TotalTime", "WorkoutDuration", "Duration", "Time"}
	totalDistanceFields = []string{"TotalWorkDistance", "TotalDistance", "WorkoutDistance", "Distance", "Meters"}
	averageSplitFields  = []string{"Average500mSplit", "AverageSplit", "AvgSplit", "Pace", "AveragePace"}
	strokeRateFields    = []string{"AverageStrokeRate", "AvgStrokeRate", "AvgSPM", "SPM"}
	heartRateFields     = []string{"AverageHeartRate", "AvgHeartRate", "AvgHR", "HeartRate", "HR"}
	dateFields          = []string{"Date", "WorkoutDate"}
)

// Parser turns extractions into workout records.
type Parser struct {
	dedupe *Deduplicator
	logger *slog.Logger
}

// NewParser creates a Parser that deduplicates interval tables with the given
// configuration.
func NewParser(cfg DedupeConfig, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		dedupe: NewDeduplicator(cfg, logger),
		logger: logger.With("component", "parser"),
	}
}

// Parse builds the final record from an extraction: classification, summary
// fields through their alternate-name chains, tables, and interval
// deduplication. The standardTable alias points at the best-guess primary
// table.
func (p *Parser) Parse(ext Extraction) *WorkoutRecord {
	workoutType := Classify(ext.Fields, ext.Tables, p.logger)

	rec := &WorkoutRecord{
		WorkoutType:       workoutType,
		TotalTime:         fieldWithAlternates(ext.Fields, totalTimeFields),
		TotalDistance:     parseDistance(fieldWithAlternates(ext.Fields, totalDistanceFields)),
		AverageSplit:      fieldWithAlternates(ext.Fields, averageSplitFields),
		AverageStrokeRate: parseNumber(fieldWithAlternates(ext.Fields, strokeRateFields)),
		AverageHeartRate:  parseNumber(fieldWithAlternates(ext.Fields, heartRateFields)),
		Date:              fieldWithAlternates(ext.Fields, dateFields),
		WorkoutTitle:      fieldWithAlternates(ext.Fields, titleFieldNames),
		Tables:            ext.Tables,
		Fields:            ext.Fields,
		Lists:             ext.Lists,
	}

	for _, name := range []string{"StandardTable", "IntervalTable", "VariableIntervalTable"} {
		if t := ext.Tables[name]; len(t) > 0 {
			rec.StandardTable = t
			break
		}
	}

	p.dedupe.Apply(rec)

	p.logger.Debug("workout record assembled",
		"type", rec.WorkoutType,
		"tables", len(rec.Tables),
		"usable_data", rec.HasUsableData())
	return rec
}

// parseDistance extracts an integer meter count from a formatted distance
// string ("2,000m" -> 2000).
func parseDistance(s string) int {
	return parseNumber(s)
}

// parseNumber strips everything but digits and the decimal point, then
// truncates to an int. Unparseable input yields zero.
func parseNumber(s string) int {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(numericOf(s), 64)
	if err != nil {
		return 0
	}
	return int(f)
}
