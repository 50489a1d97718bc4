// Package qrcode renders product lookup codes as PNG images.
package qrcode

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	qr "github.com/skip2/go-qrcode"
)

const payloadPrefix = "POS_PRODUCT_"

// DefaultSize is the edge length in pixels of generated images.
const DefaultSize = 256

// ProductPayload returns the string encoded into a product's QR image.
func ProductPayload(id uuid.UUID) string {
	return fmt.Sprintf("%s%s", payloadPrefix, id)
}

// GeneratePNG renders the payload as a PNG image.
func GeneratePNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qr.Encode(payload, qr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

// GenerateBase64 renders the payload as a base64-encoded PNG, suitable for
// storing on the product record and embedding in data URIs.
func GenerateBase64(payload string, size int) (string, error) {
	png, err := GeneratePNG(payload, size)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
