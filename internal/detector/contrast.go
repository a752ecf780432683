package detector

import (
	"image"

	"github.com/MeKo-Tech/ergsnap/internal/raster"
)

// detectByContrast segments the image by local contrast. Lit LCD text on a
// solid background produces a block of high-variance windows that survives
// thresholding and morphological cleanup.
func (d *Detector) detectByContrast(img image.Image, blurred *raster.Gray) (DetectionOutcome, bool) {
	cfg := d.cfg.Contrast
	w, h := blurred.W, blurred.H
	imageArea := float64(w * h)

	contrast := raster.LocalStdDev(blurred, cfg.Window)
	mask := raster.Threshold(contrast, cfg.Threshold).Close(5).Open(5)

	comps, _ := largestComponents(mask)
	if len(comps) > cfg.MaxContours {
		comps = comps[:cfg.MaxContours]
	}

	for _, comp := range comps {
		box := componentBox(comp)
		areaRatio := box.Area() / imageArea
		if areaRatio <= cfg.MinAreaRatio || areaRatio >= cfg.MaxAreaRatio {
			continue
		}
		aspect := box.AspectRatio()
		if aspect <= cfg.MinAspect || aspect >= cfg.MaxAspect {
			continue
		}
		d.logger.Debug("monitor detected by contrast segmentation", "area_ratio", areaRatio, "aspect", aspect)
		return DetectionOutcome{
			Image:      cropWithMargin(img, box, cfg.Margin),
			Detected:   true,
			Technique:  TechniqueContrast,
			Message:    "Monitor detected using contrast segmentation",
			Confidence: areaRatio,
		}, true
	}
	return DetectionOutcome{}, false
}
