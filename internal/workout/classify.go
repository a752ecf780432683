package workout

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// titleFieldNames is the fallback order for resolving the workout title.
var titleFieldNames = []string{"WorkoutTitle", "WorkoutName", "Workout", "Title", "Name", "ScreenTitle"}

// intervalTableNames are the table fields whose presence marks an interval
// workout.
var intervalTableNames = []string{"IntervalTable", "VariableIntervalTable"}

var (
	repeatPattern   = regexp.MustCompile(`\d+\s*[xX]\s*\d+`)
	ellipsisPattern = regexp.MustCompile(`\.\.\.\d+\s*or\s*\d+`)
	distancePattern = regexp.MustCompile(`\d+\s*[mM]`)
	minutesPattern  = regexp.MustCompile(`\d+\s*[mM]in`)
	clockPattern    = regexp.MustCompile(`\d+:\d+`)
)

var intervalKeywords = []string{"interval", "intervals", "rest", "recovery", "work/rest"}

// Classify infers the workout type from extracted fields and tables. Checks
// run in priority order; the first match wins and the fallback is a single
// distance piece.
func Classify(fields map[string]string, tables map[string]Table, logger *slog.Logger) WorkoutType {
	if logger == nil {
		logger = slog.Default()
	}

	for _, name := range intervalTableNames {
		if t, ok := tables[name]; ok && len(t) > 0 {
			logger.Debug("classified by interval table presence", "table", name, "rows", len(t))
			return TypeInterval
		}
	}

	if n, ok := parseIntField(fields, "NumIntervals"); ok && n > 0 {
		logger.Debug("classified by interval count field", "num_intervals", n)
		return TypeInterval
	}

	title := fieldWithAlternates(fields, titleFieldNames)
	if title != "" {
		lower := strings.ToLower(strings.TrimSpace(title))
		switch {
		case repeatPattern.MatchString(title):
			logger.Debug("classified by repeat pattern in title", "title", title)
			return TypeInterval
		case ellipsisPattern.MatchString(title):
			logger.Debug("classified by ellipsis pattern in title", "title", title)
			return TypeInterval
		case containsAny(lower, intervalKeywords):
			logger.Debug("classified by interval keyword in title", "title", title)
			return TypeInterval
		case distancePattern.MatchString(title):
			logger.Debug("classified by distance pattern in title", "title", title)
			return TypeSingleDistance
		case minutesPattern.MatchString(title) || clockPattern.MatchString(title):
			logger.Debug("classified by time pattern in title", "title", title)
			return TypeSingleTime
		}
	}

	logger.Debug("no classification signal, defaulting to single distance")
	return TypeSingleDistance
}

// fieldWithAlternates returns the first non-empty value among the named
// fields.
func fieldWithAlternates(fields map[string]string, names []string) string {
	for _, name := range names {
		if v := fields[name]; v != "" {
			return v
		}
	}
	return ""
}

func parseIntField(fields map[string]string, name string) (int, bool) {
	v, ok := fields[name]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
