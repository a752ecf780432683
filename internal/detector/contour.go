package detector

import (
	"image"

	"github.com/MeKo-Tech/ergsnap/internal/raster"
	"github.com/MeKo-Tech/ergsnap/internal/utils"
)

// detectByContour looks for a quadrilateral monitor outline in a combined
// Canny + adaptive-threshold edge map. Unlike the later stages it scores all
// candidates and picks the best before deciding, and a success hands the quad
// to the normalizer for perspective correction.
func (d *Detector) detectByContour(img image.Image, blurred *raster.Gray) (DetectionOutcome, bool) {
	cfg := d.cfg.Contour
	w, h := blurred.W, blurred.H
	imageArea := float64(w * h)

	edges := raster.Canny(blurred, 50, 150)
	thresh := raster.AdaptiveThresholdInv(blurred, 11, 2)
	combined := edges.Or(thresh).Dilate(3, 1)

	comps, labels := largestComponents(combined)
	if len(comps) > cfg.MaxCandidates {
		comps = comps[:cfg.MaxCandidates]
	}

	var bestQuad utils.Quad
	bestScore := 0.0
	found := false

	for _, comp := range comps {
		contour := raster.TraceContour(labels, w, h, comp)
		if len(contour) < 3 {
			continue
		}
		approx := utils.SimplifyPolygon(contour, cfg.ApproxEpsilon*utils.ArcLength(contour))
		quad, ok := quadFromApprox(approx, contour, cfg.RectSubstMax)
		if !ok {
			continue
		}

		areaRatio := quad.Area() / imageArea
		if areaRatio <= cfg.MinAreaRatio || areaRatio >= cfg.MaxAreaRatio {
			continue
		}
		score := areaRatio * d.rectangleConfidence(quad)
		if score > bestScore {
			bestScore = score
			bestQuad = quad
			found = true
		}
	}

	if !found || bestScore <= cfg.MinScore {
		return DetectionOutcome{}, false
	}

	normalized, err := d.normalizer.Normalize(img, bestQuad)
	if err != nil {
		d.logger.Debug("contour quad found but normalization failed", "error", err)
		return DetectionOutcome{}, false
	}
	d.logger.Debug("monitor detected by contour analysis", "score", bestScore)
	return DetectionOutcome{
		Image:      normalized,
		Detected:   true,
		Technique:  TechniqueContour,
		Message:    "Monitor screen detected and cropped successfully",
		Confidence: bestScore,
	}, true
}

// quadFromApprox coerces a 3-6 vertex approximation into a four-corner quad.
// A non-quad shape is replaced by its bounding rectangle when the rectangle's
// area stays within rectSubstMax of the traced contour's area.
func quadFromApprox(approx, contour []utils.Point, rectSubstMax float64) (utils.Quad, bool) {
	if len(approx) < 3 || len(approx) > 6 {
		return utils.Quad{}, false
	}
	if len(approx) == 4 {
		return utils.OrderQuadPoints(approx), true
	}
	box := utils.BoundingBox(approx)
	contourArea := utils.PolygonArea(contour)
	if contourArea <= 0 || box.Area()/contourArea >= rectSubstMax {
		return utils.Quad{}, false
	}
	return utils.Quad{
		{X: box.MinX, Y: box.MinY},
		{X: box.MaxX, Y: box.MinY},
		{X: box.MaxX, Y: box.MaxY},
		{X: box.MinX, Y: box.MaxY},
	}, true
}

// rectangleConfidence scores how close a quad is to an upright rectangle of
// monitor-like proportions. Equal diagonals dominate the score; the aspect
// term penalizes proportions outside the expected band.
func (d *Detector) rectangleConfidence(q utils.Quad) float64 {
	cfg := d.cfg.Contour

	d1, d2 := q.Diagonals()
	if d1 <= 0 || d2 <= 0 {
		return 0
	}
	diagSim := d1 / d2
	if d2 < d1 {
		diagSim = d2 / d1
	}

	longSide := max(q.TopWidth(), q.BottomWidth())
	shortSide := max(q.LeftHeight(), q.RightHeight())
	if shortSide > longSide {
		longSide, shortSide = shortSide, longSide
	}
	aspectTerm := 1.0
	if shortSide <= 0 {
		aspectTerm = 0
	} else if ratio := longSide / shortSide; ratio < cfg.AspectLow || ratio > cfg.AspectHigh {
		aspectTerm = cfg.AspectPenalty
	}

	return cfg.DiagonalWeight*diagSim + cfg.AspectWeight*aspectTerm
}
