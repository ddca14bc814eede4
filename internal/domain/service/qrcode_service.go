package service

// QRCodeService renders tracking references for packing slips.
type QRCodeService interface {
	// GenerateTrackingQR returns a PNG encoding trackingNumber.
	GenerateTrackingQR(trackingNumber string) ([]byte, error)
}
