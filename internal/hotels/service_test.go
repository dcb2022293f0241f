package hotels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStayDates_Valid(t *testing.T) {
	in := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	out := time.Now().UTC().AddDate(0, 0, 10).Format("2006-01-02")

	checkIn, checkOut, err := ParseStayDates(in, out)
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, checkOut.Sub(checkIn))
	assert.Equal(t, time.UTC, checkIn.Location())
}

func TestParseStayDates_BadFormat(t *testing.T) {
	_, _, err := ParseStayDates("07/15/2026", "2026-07-18")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, _, err = ParseStayDates("2026-07-15", "next tuesday")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestParseStayDates_CheckOutMustFollowCheckIn(t *testing.T) {
	_, _, err := ParseStayDates("2026-09-10", "2026-09-10")
	assert.ErrorIs(t, err, ErrCheckOutNotAfterIn)

	_, _, err = ParseStayDates("2026-09-10", "2026-09-08")
	assert.ErrorIs(t, err, ErrCheckOutNotAfterIn)
}

func TestParseStayDates_RejectsPastCheckIn(t *testing.T) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	future := time.Now().UTC().AddDate(0, 0, 5).Format("2006-01-02")

	_, _, err := ParseStayDates(yesterday, future)
	assert.ErrorIs(t, err, ErrCheckInPast)
}

func TestParseStayDates_TodayIsAllowed(t *testing.T) {
	today := time.Now().UTC().Format("2006-01-02")
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	_, _, err := ParseStayDates(today, tomorrow)
	assert.NoError(t, err)
}
