package detector

// ContourConfig tunes the edge/contour quad detection stage.
type ContourConfig struct {
	MaxCandidates  int     // largest contours considered
	ApproxEpsilon  float64 // polygon approximation tolerance, fraction of perimeter
	MinAreaRatio   float64 // candidate quad area / image area lower bound
	MaxAreaRatio   float64 // upper bound
	MinScore       float64 // acceptance threshold on area_ratio * rect_confidence
	RectSubstMax   float64 // bounding rect may replace a 3/5/6-gon when rect/contour area is below this
	DiagonalWeight float64
	AspectWeight   float64
	AspectPenalty  float64 // confidence multiplier applied outside the aspect band
	AspectLow      float64
	AspectHigh     float64
}

// HoughLinesConfig tunes the line-segment fallback stage.
type HoughLinesConfig struct {
	Threshold     int
	MinLineLength int
	MaxGap        int
	MinAreaRatio  float64
	MaxAreaRatio  float64
	Margin        float64
}

// ContrastConfig tunes the contrast-segmentation stage.
type ContrastConfig struct {
	Window       int   // local std-dev window size
	Threshold    uint8 // binarization level on the normalized contrast map
	MaxContours  int
	MinAreaRatio float64
	MaxAreaRatio float64
	MinAspect    float64
	MaxAspect    float64
	Margin       float64
}

// GridConfig tunes the text-likelihood grid stage.
type GridConfig struct {
	Rows         int
	Cols         int
	EdgeWeight   float64
	HistWeight   float64
	VarWeight    float64
	MinAreaRatio float64
	MaxAreaRatio float64
	Margin       float64
}

// MultiScaleConfig tunes the multi-scale edge stage.
type MultiScaleConfig struct {
	Scales        []float64
	ApproxEpsilon float64
	MinAreaRatio  float64
	MaxAreaRatio  float64
	MinAspect     float64
	MaxAspect     float64
	MinScore      float64
	Margin        float64
	IdealAspect   float64
}

// Config collects the tuning constants for all five cascade stages. The
// values are empirically tuned for rowing-machine monitors; expose them
// rather than hard-coding so callers can adjust per deployment.
type Config struct {
	Contour    ContourConfig
	Hough      HoughLinesConfig
	Contrast   ContrastConfig
	Grid       GridConfig
	MultiScale MultiScaleConfig
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		Contour: ContourConfig{
			MaxCandidates:  20,
			ApproxEpsilon:  0.02,
			MinAreaRatio:   0.05,
			MaxAreaRatio:   0.95,
			MinScore:       0.12,
			RectSubstMax:   1.5,
			DiagonalWeight: 0.7,
			AspectWeight:   0.3,
			AspectPenalty:  0.8,
			AspectLow:      1.2,
			AspectHigh:     1.9,
		},
		Hough: HoughLinesConfig{
			Threshold:     100,
			MinLineLength: 100,
			MaxGap:        10,
			MinAreaRatio:  0.1,
			MaxAreaRatio:  0.9,
			Margin:        0.1,
		},
		Contrast: ContrastConfig{
			Window:       21,
			Threshold:    50,
			MaxContours:  5,
			MinAreaRatio: 0.05,
			MaxAreaRatio: 0.9,
			MinAspect:    0.5,
			MaxAspect:    3.0,
			Margin:       0.1,
		},
		Grid: GridConfig{
			Rows:         4,
			Cols:         6,
			EdgeWeight:   0.5,
			HistWeight:   0.3,
			VarWeight:    0.2,
			MinAreaRatio: 0.05,
			MaxAreaRatio: 0.9,
			Margin:       0.15,
		},
		MultiScale: MultiScaleConfig{
			Scales:        []float64{0.5, 0.75, 1.0, 1.5},
			ApproxEpsilon: 0.04,
			MinAreaRatio:  0.05,
			MaxAreaRatio:  0.9,
			MinAspect:     0.5,
			MaxAspect:     3.0,
			MinScore:      0.1,
			Margin:        0.1,
			IdealAspect:   1.33,
		},
	}
}
