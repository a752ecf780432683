package pipeline

// Options are the resolved per-request processing flags.
type Options struct {
	EnhanceReadability      bool
	StitchImages            bool
	PerformOCR              bool
	RequireMonitorDetection bool
	Debug                   bool
	ModelID                 string
	APIVersion              string
	Endpoint                string
	Key                     string
}

// RequestOptions is the wire-level options object. Boolean fields are
// pointers so an absent field can fall back to its default instead of false.
type RequestOptions struct {
	EnhanceReadability      *bool  `json:"enhanceReadability,omitempty"`
	StitchImages            *bool  `json:"stitchImages,omitempty"`
	PerformOCR              *bool  `json:"performOcr,omitempty"`
	OCR                     *bool  `json:"ocr,omitempty"`
	RequireMonitorDetection *bool  `json:"requireMonitorDetection,omitempty"`
	Debug                   *bool  `json:"debug,omitempty"`
	ModelID                 string `json:"modelId,omitempty"`
	APIVersion              string `json:"apiVersion,omitempty"`
	Endpoint                string `json:"endpoint,omitempty"`
	Key                     string `json:"key,omitempty"`
}

// Resolve applies defaults for a request carrying imageCount images:
// enhancement, OCR and strict detection default on, stitching defaults on
// only for multi-image requests. The legacy "ocr" flag is honored when
// "performOcr" is absent.
func (r RequestOptions) Resolve(imageCount int) Options {
	performOCR := r.PerformOCR
	if performOCR == nil {
		performOCR = r.OCR
	}
	return Options{
		EnhanceReadability:      boolOr(r.EnhanceReadability, true),
		StitchImages:            boolOr(r.StitchImages, imageCount > 1),
		PerformOCR:              boolOr(performOCR, true),
		RequireMonitorDetection: boolOr(r.RequireMonitorDetection, true),
		Debug:                   boolOr(r.Debug, false),
		ModelID:                 r.ModelID,
		APIVersion:              r.APIVersion,
		Endpoint:                r.Endpoint,
		Key:                     r.Key,
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
