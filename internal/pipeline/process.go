package pipeline

import (
	"context"
	"fmt"
	"image"
	"sort"

	"github.com/MeKo-Tech/ergsnap/internal/common"
	"github.com/MeKo-Tech/ergsnap/internal/detector"
	"github.com/MeKo-Tech/ergsnap/internal/ocr"
	"github.com/MeKo-Tech/ergsnap/internal/stitch"
	"github.com/MeKo-Tech/ergsnap/internal/utils"
	"github.com/MeKo-Tech/ergsnap/internal/workout"
)

// lenientCropMargin is the fixed per-edge crop applied to a single-image
// request whose detection failed, instead of failing the request.
const lenientCropMargin = 0.1

// noUsableDataMessage is surfaced when OCR completed but produced no
// split or interval rows.
const noUsableDataMessage = "Workout data couldn't be read from the image. Please take " +
	"another photo with better lighting and a clearer view of the monitor screen."

// Result is the response shape for one processing request.
type Result struct {
	Success           bool                   `json:"success"`
	MonitorDetected   bool                   `json:"monitorDetected"`
	DetectionMessages []string               `json:"detectionMessages"`
	ProcessedImages   []string               `json:"processedImages"`
	StitchedImage     string                 `json:"stitchedImage,omitempty"`
	OCRResults        *ocr.AnalyzeResult     `json:"ocrResults,omitempty"`
	ParsedData        *workout.WorkoutRecord `json:"parsedData,omitempty"`
	OCRSuccess        bool                   `json:"ocrSuccess"`
	NeedsBetterImage  bool                   `json:"needsBetterImage,omitempty"`
	Error             string                 `json:"error,omitempty"`
}

// Process runs the full flow for one request: decode, detect and normalize
// each image, optionally enhance and stitch, then OCR and interpret. It
// always returns a Result; errors are folded into it rather than raised,
// except for context cancellation.
func (p *Pipeline) Process(ctx context.Context, encodedImages []string, opts Options) (*Result, error) {
	res := &Result{}
	if len(encodedImages) == 0 {
		res.Error = "no images provided"
		return res, nil
	}

	decoded := p.decodeImages(encodedImages, res)
	if len(decoded) == 0 {
		res.Error = "no images could be decoded"
		res.NeedsBetterImage = true
		return res, nil
	}

	detectTimer := common.NewNamedTimer("detection")
	outcomes, err := p.detectAll(ctx, decoded)
	detectTimer.LogStop(p.logger)
	if err != nil {
		return nil, err
	}

	processed, ok := p.applyDetectionPolicy(decoded, outcomes, opts, res)
	if !ok {
		return res, nil
	}

	if opts.EnhanceReadability {
		for i, img := range processed {
			enhanced, err := utils.EnhanceReadability(img)
			if err != nil {
				p.logger.Warn("enhancement failed, keeping unenhanced image", "image", i, "error", err)
				continue
			}
			processed[i] = enhanced
		}
	}

	for _, img := range processed {
		encoded, err := utils.EncodeBase64Image(img)
		if err != nil {
			res.Error = fmt.Sprintf("encoding processed image: %v", err)
			return res, nil
		}
		res.ProcessedImages = append(res.ProcessedImages, encoded)
	}

	ocrTarget := processed[0]
	if len(processed) >= 2 && opts.StitchImages {
		stitched, err := stitch.Stitch(processed)
		if err != nil {
			res.Error = fmt.Sprintf("stitching images: %v", err)
			return res, nil
		}
		encoded, err := utils.EncodeBase64Image(stitched)
		if err != nil {
			res.Error = fmt.Sprintf("encoding stitched image: %v", err)
			return res, nil
		}
		res.StitchedImage = encoded
		ocrTarget = stitched
	}

	if !opts.PerformOCR {
		res.Success = true
		return res, nil
	}
	return p.runOCR(ctx, ocrTarget, opts, res)
}

// decodeImages decodes every base64 image, absorbing per-image failures into
// detection messages.
func (p *Pipeline) decodeImages(encodedImages []string, res *Result) []image.Image {
	var decoded []image.Image
	for i, enc := range encodedImages {
		img, err := utils.DecodeBase64Image(enc)
		if err != nil {
			p.logger.Warn("skipping undecodable image", "image", i, "error", err)
			res.DetectionMessages = append(res.DetectionMessages,
				fmt.Sprintf("Image %d could not be decoded and was skipped", i+1))
			continue
		}
		decoded = append(decoded, img)
	}
	return decoded
}

// applyDetectionPolicy converts detection outcomes into the processed image
// list, applying the lenient single-image fallback or the strict multi-image
// abort.
func (p *Pipeline) applyDetectionPolicy(
	images []image.Image, outcomes []detector.DetectionOutcome, opts Options, res *Result,
) ([]image.Image, bool) {
	res.MonitorDetected = true
	processed := make([]image.Image, 0, len(images))

	for i, out := range outcomes {
		res.DetectionMessages = append(res.DetectionMessages, out.Message)
		if opts.Debug {
			p.logger.Info("detection outcome", "image", i, "detected", out.Detected, "message", out.Message)
		}
		if out.Detected {
			processed = append(processed, out.Image)
			continue
		}

		res.MonitorDetected = false
		if len(images) == 1 {
			p.logger.Info("detection failed on single image, applying lenient crop")
			processed = append(processed, utils.CenterCrop(images[i], lenientCropMargin))
			continue
		}
		if opts.RequireMonitorDetection {
			p.logger.Info("detection failed in multi-image request, aborting", "image", i)
			res.NeedsBetterImage = true
			res.Error = out.Message
			return nil, false
		}
		processed = append(processed, out.Image)
	}
	return processed, true
}

// runOCR sends the target image to the document service and interprets the
// result.
func (p *Pipeline) runOCR(ctx context.Context, target image.Image, opts Options, res *Result) (*Result, error) {
	imageBytes, err := utils.EncodeImageBytes(target)
	if err != nil {
		res.Error = fmt.Sprintf("encoding OCR target: %v", err)
		return res, nil
	}

	ocrTimer := common.NewNamedTimer("ocr")
	analyzed, err := p.ocrClient(opts).Analyze(ctx, imageBytes)
	ocrTimer.LogStop(p.logger)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Error("OCR analysis failed", "error", err)
		res.Error = err.Error()
		return res, nil
	}
	res.OCRResults = analyzed

	extraction := workout.Extract(analyzed)
	if opts.Debug {
		p.logExtraction(extraction)
	}
	record := p.parser.Parse(extraction)
	res.ParsedData = record

	if !record.HasUsableData() {
		p.logger.Info("OCR produced no usable workout data")
		res.Success = true
		res.OCRSuccess = false
		res.NeedsBetterImage = true
		res.Error = noUsableDataMessage
		return res, nil
	}

	res.Success = true
	res.OCRSuccess = true
	return res, nil
}

// logExtraction reports what the document service returned, for requests
// that ask for debug detail.
func (p *Pipeline) logExtraction(ext workout.Extraction) {
	fields := make([]string, 0, len(ext.Fields))
	for name := range ext.Fields {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	p.logger.Info("extracted fields", "fields", fields)
	for name, table := range ext.Tables {
		p.logger.Info("extracted table", "table", name, "rows", len(table), "data_rows", table.DataRowCount())
	}
}

// ocrClient returns the default OCR client, or a derived one when the
// request overrides credentials or model parameters.
func (p *Pipeline) ocrClient(opts Options) *ocr.Client {
	if opts.Endpoint == "" && opts.Key == "" && opts.ModelID == "" && opts.APIVersion == "" {
		return p.ocr
	}
	cfg := p.cfg.OCR
	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
	}
	if opts.Key != "" {
		cfg.Key = opts.Key
	}
	if opts.ModelID != "" {
		cfg.ModelID = opts.ModelID
	}
	if opts.APIVersion != "" {
		cfg.APIVersion = opts.APIVersion
	}
	return ocr.New(cfg, nil, p.logger)
}
