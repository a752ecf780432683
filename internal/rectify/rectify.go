package rectify

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/MeKo-Tech/ergsnap/internal/raster"
	"github.com/MeKo-Tech/ergsnap/internal/utils"
)

// Normalizer flattens monitor quadrilaterals into front-facing views.
type Normalizer struct {
	cfg    Config
	logger *slog.Logger
}

// NewNormalizer creates a Normalizer with the given configuration.
func NewNormalizer(cfg Config, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{cfg: cfg, logger: logger.With("component", "rectify")}
}

// Normalize warps the quadrilateral region of img into a front-facing
// rectangle with the configured aspect ratio, then crops the result to its
// display content. The corner order of quad does not matter.
func (n *Normalizer) Normalize(img image.Image, quad utils.Quad) (image.Image, error) {
	ordered := utils.OrderQuadPoints(quad.Points())

	width := math.Max(ordered.TopWidth(), ordered.BottomWidth())
	if width < 2 {
		return nil, fmt.Errorf("normalize: degenerate quad, width %.1f", width)
	}
	dstW := int(math.Round(width))
	dstH := int(math.Round(width * n.cfg.TargetAspect))
	if dstH < 2 {
		return nil, fmt.Errorf("normalize: degenerate output height %d", dstH)
	}

	warped := warpQuad(img, ordered, dstW, dstH)
	if warped == nil {
		return nil, fmt.Errorf("normalize: homography is singular")
	}

	refined := n.refineContent(warped)
	n.logger.Debug("normalized monitor region",
		"warped_width", dstW, "warped_height", dstH,
		"refined_width", refined.Bounds().Dx(), "refined_height", refined.Bounds().Dy())
	return refined, nil
}

// refineContent crops the warped frame down to its lit display content.
// Bright regions are thresholded and merged into a padded bounding box;
// if that box covers too little of the frame it is treated as glare and
// the full frame is returned unchanged.
func (n *Normalizer) refineContent(img image.Image) image.Image {
	g := raster.FromImage(img)
	mask := raster.Threshold(g, n.cfg.ContentThreshold)
	comps, _ := raster.ConnectedComponents(mask)

	haveContent := false
	minX, minY := g.W, g.H
	maxX, maxY := 0, 0
	for _, c := range comps {
		if c.Area < n.cfg.MinContentArea {
			continue
		}
		haveContent = true
		if c.MinX < minX {
			minX = c.MinX
		}
		if c.MinY < minY {
			minY = c.MinY
		}
		if c.MaxX > maxX {
			maxX = c.MaxX
		}
		if c.MaxY > maxY {
			maxY = c.MaxY
		}
	}
	if !haveContent {
		return img
	}

	box := utils.NewBox(float64(minX), float64(minY), float64(maxX+1), float64(maxY+1))
	padX := box.Width() * n.cfg.ContentPadding
	padY := box.Height() * n.cfg.ContentPadding
	box = box.Expand(padX, padY, g.W, g.H)

	// Coverage is judged on the padded crop.
	coverage := box.Area() / float64(g.W*g.H)
	if coverage < n.cfg.MinContentCoverage {
		n.logger.Debug("content box too small, keeping full frame", "coverage", coverage)
		return img
	}
	return utils.CropImageBox(img, box)
}
