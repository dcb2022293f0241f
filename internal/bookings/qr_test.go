package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScanPayload(t *testing.T) {
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	payload := BuildScanPayload(42, "guest@example.com", "101", checkIn, checkOut)
	assert.Equal(t, "BookingID:42|User:guest@example.com|Room:101|CheckIn:2026-09-10|CheckOut:2026-09-12", payload)
}

func TestParseScanPayload(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		wantID  uint
		wantOK  bool
	}{
		{"full payload", "BookingID:42|User:guest@example.com|Room:101|CheckIn:2026-09-10|CheckOut:2026-09-12", 42, true},
		{"id field only", "BookingID:7", 7, true},
		{"bare integer", "1234", 1234, true},
		{"surrounding whitespace", "  BookingID:5|User:x  ", 5, true},
		{"empty", "", 0, false},
		{"garbage", "hello world", 0, false},
		{"non-numeric id", "BookingID:abc|User:x", 0, false},
		{"uuid token is not an id", "0191d3a0-1111-7000-8000-000000000000", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := ParseScanPayload(tc.payload)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestRenderQRCode_ProducesPNG(t *testing.T) {
	png, err := RenderQRCode("BookingID:42", 0)
	require.NoError(t, err)
	// PNG magic bytes.
	require.True(t, len(png) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
