package detector

import (
	"image"
	"log/slog"
	"sort"

	"github.com/MeKo-Tech/ergsnap/internal/raster"
	"github.com/MeKo-Tech/ergsnap/internal/rectify"
	"github.com/MeKo-Tech/ergsnap/internal/utils"
)

// FailureMessage is returned to callers when no technique finds the monitor.
const FailureMessage = "No rowing machine monitor detected. Please take another photo " +
	"where the monitor screen is clearly visible, well-lit, and centered in the frame."

// Detector runs the five-stage detection cascade over single images.
type Detector struct {
	cfg        Config
	normalizer *rectify.Normalizer
	logger     *slog.Logger
}

// New creates a Detector. The normalizer handles perspective correction for
// quads found by the contour stage.
func New(cfg Config, normalizer *rectify.Normalizer, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{cfg: cfg, normalizer: normalizer, logger: logger.With("component", "detector")}
}

// Detect runs the cascade in priority order and returns the first acceptable
// result. The contour stage self-selects its best candidate and, on success,
// yields a perspective-normalized view; the remaining stages crop the source
// image around their detected region. When every stage fails, the outcome
// carries the unmodified input and a guidance message.
func (d *Detector) Detect(img image.Image) DetectionOutcome {
	gray := raster.FromImage(img)
	blurred := raster.GaussianBlur(gray)

	if out, ok := d.detectByContour(img, blurred); ok {
		return out
	}
	if out, ok := d.detectByHoughLines(img, blurred); ok {
		return out
	}
	if out, ok := d.detectByContrast(img, blurred); ok {
		return out
	}
	if out, ok := d.detectByGrid(img, gray); ok {
		return out
	}
	if out, ok := d.detectMultiScale(img, gray); ok {
		return out
	}

	d.logger.Warn("all detection techniques failed")
	return DetectionOutcome{
		Image:     img,
		Detected:  false,
		Technique: TechniqueNone,
		Message:   FailureMessage,
	}
}

// largestComponents returns the mask's connected components sorted by pixel
// area, largest first, along with the label plane.
func largestComponents(m *raster.Mask) ([]raster.Component, []int) {
	comps, labels := raster.ConnectedComponents(m)
	sort.Slice(comps, func(i, j int) bool { return comps[i].Area > comps[j].Area })
	return comps, labels
}

// cropWithMargin expands the box outward by the given fraction of its own
// size, clamps to the image, and crops.
func cropWithMargin(img image.Image, box utils.Box, margin float64) image.Image {
	b := img.Bounds()
	expanded := box.Expand(margin*box.Width(), margin*box.Height(), b.Dx(), b.Dy())
	return utils.CropImageBox(img, expanded)
}

func componentBox(c raster.Component) utils.Box {
	return utils.NewBox(float64(c.MinX), float64(c.MinY), float64(c.MaxX+1), float64(c.MaxY+1))
}
