// Package rectify warps detected monitor quadrilaterals into a flat,
// front-facing 4:3 view and trims the result down to its display content.
package rectify

// Config controls perspective normalization and content refinement.
type Config struct {
	// TargetAspect is the height/width ratio of the normalized output.
	TargetAspect float64

	// ContentThreshold is the grayscale level above which a pixel counts
	// as lit display content during refinement.
	ContentThreshold uint8

	// MinContentArea is the smallest connected bright region, in pixels,
	// considered display content.
	MinContentArea int

	// ContentPadding is the fraction of the content box added on each side
	// when cropping.
	ContentPadding float64

	// MinContentCoverage is the minimum fraction of the normalized frame
	// the content box must cover for refinement to apply. Below this the
	// bright regions are treated as glare and the full frame is kept.
	MinContentCoverage float64
}

// DefaultConfig returns settings tuned for rowing-machine monitors.
func DefaultConfig() Config {
	return Config{
		TargetAspect:       3.0 / 4.0,
		ContentThreshold:   100,
		MinContentArea:     50,
		ContentPadding:     0.08,
		MinContentCoverage: 0.25,
	}
}
