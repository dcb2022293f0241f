package bookings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

const qrDateLayout = "2006-01-02"

// BuildScanPayload renders the pipe-delimited string embedded in a
// booking's QR code.
func BuildScanPayload(bookingID uint, userEmail, roomNumber string, checkIn, checkOut time.Time) string {
	return fmt.Sprintf("BookingID:%d|User:%s|Room:%s|CheckIn:%s|CheckOut:%s",
		bookingID,
		userEmail,
		roomNumber,
		checkIn.Format(qrDateLayout),
		checkOut.Format(qrDateLayout),
	)
}

// ParseScanPayload extracts the booking id from a scanned payload. It
// accepts the full pipe-delimited format (only the BookingID field up to
// the first pipe matters) and a bare integer as fallback. Returns false
// when the payload carries no booking id; the caller may then treat the
// payload as a raw QR token.
func ParseScanPayload(payload string) (uint, bool) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return 0, false
	}

	if strings.HasPrefix(payload, "BookingID:") {
		idPart := strings.TrimPrefix(payload, "BookingID:")
		if pipe := strings.IndexByte(idPart, '|'); pipe >= 0 {
			idPart = idPart[:pipe]
		}
		id, err := strconv.ParseUint(strings.TrimSpace(idPart), 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(id), true
	}

	// Bare integer fallback
	if id, err := strconv.ParseUint(payload, 10, 64); err == nil {
		return uint(id), true
	}

	return 0, false
}

// RenderQRCode encodes a payload into a PNG image.
func RenderQRCode(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}
