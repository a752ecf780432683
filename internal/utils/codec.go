package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
)

// ImageProcessingError represents errors that can occur during image processing.
type ImageProcessingError struct {
	Operation string
	Err       error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("image processing error in %s: %v", e.Operation, e.Err)
}

func (e *ImageProcessingError) Unwrap() error { return e.Err }

// jpegQuality is the encode quality used for processed and stitched images.
const jpegQuality = 90

// DecodeBase64Image decodes a base64 payload into an image. A data-URI
// prefix ("data:image/jpeg;base64,") is stripped when present.
func DecodeBase64Image(encoded string) (image.Image, error) {
	if encoded == "" {
		return nil, &ImageProcessingError{Operation: "decode", Err: errors.New("empty payload")}
	}
	if idx := strings.IndexByte(encoded, ','); idx >= 0 {
		encoded = encoded[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &ImageProcessingError{Operation: "decode", Err: fmt.Errorf("invalid base64: %w", err)}
	}
	return DecodeImageBytes(raw)
}

// DecodeImageBytes decodes raw image bytes (JPEG, PNG or BMP).
func DecodeImageBytes(raw []byte) (image.Image, error) {
	if len(raw) == 0 {
		return nil, &ImageProcessingError{Operation: "decode", Err: errors.New("empty image data")}
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &ImageProcessingError{Operation: "decode", Err: err}
	}
	return img, nil
}

// EncodeImageBytes encodes an image as JPEG bytes.
func EncodeImageBytes(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, &ImageProcessingError{Operation: "encode", Err: errors.New("input image is nil")}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, &ImageProcessingError{Operation: "encode", Err: err}
	}
	return buf.Bytes(), nil
}

// EncodeBase64Image encodes an image as a base64 JPEG string.
func EncodeBase64Image(img image.Image) (string, error) {
	raw, err := EncodeImageBytes(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
