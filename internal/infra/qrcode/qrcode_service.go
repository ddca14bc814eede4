// Package qrcode renders tracking references as PNG QR codes for packing slips.
package qrcode

import (
	"strings"

	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/skip2/go-qrcode"
)

const (
	minSize     = 64
	maxSize     = 1024
	defaultSize = 256
)

//nolint:gochecknoglobals
var recoveryLevels = map[string]qrcode.RecoveryLevel{
	"L": qrcode.Low,
	"M": qrcode.Medium,
	"Q": qrcode.High,
	"H": qrcode.Highest,
}

type qrcodeService struct {
	size  int
	level qrcode.RecoveryLevel
}

// NewQRCodeService builds a renderer. Unknown levels fall back to M, a
// non-positive size to 256px, and sizes are clamped to 64..1024px.
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	level, ok := recoveryLevels[strings.ToUpper(strings.TrimSpace(errorCorrectionLevel))]
	if !ok {
		level = qrcode.Medium
	}
	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:  min(max(size, minSize), maxSize),
		level: level,
	}
}

// GenerateTrackingQR encodes the bare tracking number so warehouse
// scanners can read it without parsing.
func (s *qrcodeService) GenerateTrackingQR(trackingNumber string) ([]byte, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, errors.New("tracking number is empty")
	}

	png, err := qrcode.Encode(trackingNumber, s.level, s.size)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render QR for tracking number %s", trackingNumber)
	}

	return png, nil
}
