// Package detector locates the monitor screen inside a photo by running a
// cascade of geometric and statistical heuristics, each producing a candidate
// region with a confidence score.
package detector

import "image"

// Technique identifies which cascade stage produced a detection.
type Technique int

const (
	TechniqueNone Technique = iota
	TechniqueContour
	TechniqueHoughLines
	TechniqueContrast
	TechniqueGridAnalysis
	TechniqueMultiScale
)

// String returns the technique name used in logs and responses.
func (t Technique) String() string {
	switch t {
	case TechniqueContour:
		return "contour"
	case TechniqueHoughLines:
		return "hough_lines"
	case TechniqueContrast:
		return "contrast"
	case TechniqueGridAnalysis:
		return "grid_analysis"
	case TechniqueMultiScale:
		return "multi_scale"
	default:
		return "none"
	}
}

// DetectionOutcome is the result of running the cascade over one image.
// When Detected is false, Image holds the unmodified input and Message
// carries guidance for the user.
type DetectionOutcome struct {
	Image      image.Image
	Detected   bool
	Technique  Technique
	Message    string
	Confidence float64
}
