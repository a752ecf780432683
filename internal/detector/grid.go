package detector

import (
	"image"
	"math"

	"github.com/MeKo-Tech/ergsnap/internal/raster"
)

// detectByGrid partitions the image into a coarse grid and scores each cell
// for text-like content. Cells scoring clearly above the mean are merged into
// a mask whose largest region is taken as the monitor.
func (d *Detector) detectByGrid(img image.Image, gray *raster.Gray) (DetectionOutcome, bool) {
	cfg := d.cfg.Grid
	w, h := gray.W, gray.H
	imageArea := float64(w * h)
	cellH, cellW := h/cfg.Rows, w/cfg.Cols
	if cellH == 0 || cellW == 0 {
		return DetectionOutcome{}, false
	}

	scores := make([]float64, cfg.Rows*cfg.Cols)
	for i := 0; i < cfg.Rows; i++ {
		for j := 0; j < cfg.Cols; j++ {
			y1, y2 := i*cellH, min((i+1)*cellH, h)
			x1, x2 := j*cellW, min((j+1)*cellW, w)
			scores[i*cfg.Cols+j] = d.textLikelihood(gray, x1, y1, x2, y2)
		}
	}

	mean, std := meanStd(scores)
	cut := mean + 0.5*std

	mask := raster.NewMask(w, h)
	for i := 0; i < cfg.Rows; i++ {
		for j := 0; j < cfg.Cols; j++ {
			if scores[i*cfg.Cols+j] <= cut {
				continue
			}
			y1, y2 := i*cellH, min((i+1)*cellH, h)
			x1, x2 := j*cellW, min((j+1)*cellW, w)
			for y := y1; y < y2; y++ {
				row := y * w
				for x := x1; x < x2; x++ {
					mask.Bits[row+x] = true
				}
			}
		}
	}

	comps, _ := largestComponents(mask)
	if len(comps) == 0 {
		return DetectionOutcome{}, false
	}
	box := componentBox(comps[0])
	areaRatio := box.Area() / imageArea
	if areaRatio <= cfg.MinAreaRatio || areaRatio >= cfg.MaxAreaRatio {
		return DetectionOutcome{}, false
	}

	d.logger.Debug("monitor detected by grid analysis", "area_ratio", areaRatio)
	return DetectionOutcome{
		Image:      cropWithMargin(img, box, cfg.Margin),
		Detected:   true,
		Technique:  TechniqueGridAnalysis,
		Message:    "Monitor detected using grid analysis",
		Confidence: areaRatio,
	}, true
}

// textLikelihood combines edge density, histogram spread and variance into a
// single per-cell score. Text-bearing displays score high on all three.
func (d *Detector) textLikelihood(gray *raster.Gray, x1, y1, x2, y2 int) float64 {
	cfg := d.cfg.Grid
	cw, ch := x2-x1, y2-y1
	if cw <= 0 || ch <= 0 {
		return 0
	}

	cell := raster.NewGray(cw, ch)
	for y := 0; y < ch; y++ {
		copy(cell.Pix[y*cw:(y+1)*cw], gray.Pix[(y1+y)*gray.W+x1:(y1+y)*gray.W+x2])
	}

	edges := raster.Canny(cell, 50, 150)
	edgeDensity := float64(edges.Count()) / float64(cw*ch)

	var hist [32]float64
	for _, p := range cell.Pix {
		hist[p/8]++
	}
	histMean, histStd := meanStd(hist[:])
	histSpread := 0.0
	if histMean > 0 {
		histSpread = histStd / histMean
	}

	variance := raster.Variance(cell, 0, 0, cw, ch)

	return cfg.EdgeWeight*edgeDensity + cfg.HistWeight*histSpread + cfg.VarWeight*math.Min(1.0, variance/1000)
}

func meanStd(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var sq float64
	for _, v := range vals {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(vals)))
}
