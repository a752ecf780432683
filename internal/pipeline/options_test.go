package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool { return &v }

func TestResolveDefaults(t *testing.T) {
	opts := RequestOptions{}.Resolve(1)
	assert.True(t, opts.EnhanceReadability)
	assert.False(t, opts.StitchImages, "single image defaults to no stitching")
	assert.True(t, opts.PerformOCR)
	assert.True(t, opts.RequireMonitorDetection)
	assert.False(t, opts.Debug)

	opts = RequestOptions{}.Resolve(3)
	assert.True(t, opts.StitchImages, "multi-image defaults to stitching")
}

func TestResolveExplicitFlags(t *testing.T) {
	req := RequestOptions{
		EnhanceReadability:      boolPtr(false),
		StitchImages:            boolPtr(false),
		PerformOCR:              boolPtr(false),
		RequireMonitorDetection: boolPtr(false),
		Debug:                   boolPtr(true),
		ModelID:                 "custom-model",
		Endpoint:                "https://example.invalid",
		Key:                     "k",
	}
	opts := req.Resolve(2)
	assert.False(t, opts.EnhanceReadability)
	assert.False(t, opts.StitchImages)
	assert.False(t, opts.PerformOCR)
	assert.False(t, opts.RequireMonitorDetection)
	assert.True(t, opts.Debug)
	assert.Equal(t, "custom-model", opts.ModelID)
	assert.Equal(t, "https://example.invalid", opts.Endpoint)
	assert.Equal(t, "k", opts.Key)
}

func TestResolveLegacyOCRFlag(t *testing.T) {
	opts := RequestOptions{OCR: boolPtr(false)}.Resolve(1)
	assert.False(t, opts.PerformOCR, "legacy flag honored when performOcr absent")

	opts = RequestOptions{OCR: boolPtr(false), PerformOCR: boolPtr(true)}.Resolve(1)
	assert.True(t, opts.PerformOCR, "performOcr outranks the legacy flag")
}
