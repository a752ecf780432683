package detector

import (
	"image"
	"math"

	"github.com/MeKo-Tech/ergsnap/internal/raster"
	"github.com/MeKo-Tech/ergsnap/internal/utils"
)

// detectMultiScale repeats edge and contour extraction with the image resized
// to several scales, mapping candidate rectangles back to original
// coordinates. Structures too faint or too fine at native resolution can
// become detectable at a different scale.
func (d *Detector) detectMultiScale(img image.Image, gray *raster.Gray) (DetectionOutcome, bool) {
	cfg := d.cfg.MultiScale
	w, h := gray.W, gray.H
	imageArea := float64(w * h)

	var bestBox utils.Box
	bestScore := 0.0
	found := false

	for _, scale := range cfg.Scales {
		scaled := gray
		if scale != 1.0 {
			sw, sh := int(float64(w)*scale), int(float64(h)*scale)
			if sw < 8 || sh < 8 {
				continue
			}
			scaled = gray.Resize(sw, sh)
		}

		edges := raster.Canny(raster.GaussianBlur(scaled), 30, 150)
		dilated := edges.Dilate(3, 2)
		comps, labels := raster.ConnectedComponents(dilated)

		for _, comp := range comps {
			contour := raster.TraceContour(labels, scaled.W, scaled.H, comp)
			if len(contour) < 3 {
				continue
			}
			approx := utils.SimplifyPolygon(contour, cfg.ApproxEpsilon*utils.ArcLength(contour))
			if len(approx) < 3 || len(approx) > 8 {
				continue
			}

			box := utils.BoundingBox(approx)
			if scale != 1.0 {
				box = utils.NewBox(box.MinX/scale, box.MinY/scale, box.MaxX/scale, box.MaxY/scale)
			}

			areaRatio := box.Area() / imageArea
			if areaRatio < cfg.MinAreaRatio || areaRatio > cfg.MaxAreaRatio {
				continue
			}
			aspect := box.AspectRatio()
			if aspect < cfg.MinAspect || aspect > cfg.MaxAspect {
				continue
			}

			score := areaRatio * (1.0 - math.Abs(cfg.IdealAspect-aspect)/cfg.IdealAspect)
			if score > bestScore {
				bestScore = score
				bestBox = box
				found = true
			}
		}
	}

	if !found || bestScore <= cfg.MinScore {
		return DetectionOutcome{}, false
	}

	d.logger.Debug("monitor detected by multi-scale analysis", "score", bestScore)
	return DetectionOutcome{
		Image:      cropWithMargin(img, bestBox, cfg.Margin),
		Detected:   true,
		Technique:  TechniqueMultiScale,
		Message:    "Monitor detected using multi-scale analysis",
		Confidence: bestScore,
	}, true
}
