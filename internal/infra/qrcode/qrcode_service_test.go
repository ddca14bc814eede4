package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		level     string
		size      int
		wantLevel qrcode.RecoveryLevel
		wantSize  int
	}{
		{level: "L", size: 128, wantLevel: qrcode.Low, wantSize: 128},
		{level: "q", size: 256, wantLevel: qrcode.High, wantSize: 256},
		{level: "H", size: 4096, wantLevel: qrcode.Highest, wantSize: maxSize},
		{level: "", size: 0, wantLevel: qrcode.Medium, wantSize: defaultSize},
		{level: "X", size: 10, wantLevel: qrcode.Medium, wantSize: minSize},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			svc := NewQRCodeService(tt.size, tt.level).(*qrcodeService)

			assert.Equal(t, tt.wantLevel, svc.level)
			assert.Equal(t, tt.wantSize, svc.size)
		})
	}
}

func TestQRCodeService_GenerateTrackingQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	qrBytes, err := svc.GenerateTrackingQR("  TRK-000123 ")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(qrBytes))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())

	_, err = svc.GenerateTrackingQR("   ")
	assert.Error(t, err)
}
