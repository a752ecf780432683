package detector

import (
	"image"

	"github.com/MeKo-Tech/ergsnap/internal/raster"
)

// detectByHoughLines rasterizes detected line segments into a mask and takes
// the largest connected region as the monitor outline. Works when the bezel
// edges are strong but the contour stage could not close them into a quad.
func (d *Detector) detectByHoughLines(img image.Image, blurred *raster.Gray) (DetectionOutcome, bool) {
	cfg := d.cfg.Hough
	w, h := blurred.W, blurred.H
	imageArea := float64(w * h)

	edges := raster.Canny(blurred, 50, 150)
	segs := raster.HoughSegments(edges, raster.HoughConfig{
		Threshold:     cfg.Threshold,
		MinLineLength: cfg.MinLineLength,
		MaxGap:        cfg.MaxGap,
	})
	if len(segs) == 0 {
		return DetectionOutcome{}, false
	}

	mask := raster.RasterizeSegments(segs, w, h).Dilate(3, 1)
	comps, _ := largestComponents(mask)
	if len(comps) == 0 {
		return DetectionOutcome{}, false
	}

	box := componentBox(comps[0])
	areaRatio := box.Area() / imageArea
	if areaRatio <= cfg.MinAreaRatio || areaRatio >= cfg.MaxAreaRatio {
		return DetectionOutcome{}, false
	}

	d.logger.Debug("monitor detected by line analysis", "segments", len(segs), "area_ratio", areaRatio)
	return DetectionOutcome{
		Image:      cropWithMargin(img, box, cfg.Margin),
		Detected:   true,
		Technique:  TechniqueHoughLines,
		Message:    "Monitor outline detected",
		Confidence: areaRatio,
	}, true
}
