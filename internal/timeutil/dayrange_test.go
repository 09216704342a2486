package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayRange(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	t.Run("bounds the calendar day", func(t *testing.T) {
		now := time.Date(2024, 3, 15, 14, 37, 52, 0, loc)
		start, end := DayRange(now)

		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc).Unix(), start)
		assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 0, loc).Unix(), end)
		assert.Equal(t, int64(86399), end-start)
	})

	t.Run("midnight input", func(t *testing.T) {
		now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		start, end := DayRange(now)

		assert.Equal(t, now.Unix(), start)
		assert.Equal(t, now.Unix()+86399, end)
	})

	t.Run("respects the input location", func(t *testing.T) {
		// 01:00 UTC on Mar 15 is still Mar 14 in Sao Paulo (UTC-3).
		instant := time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC)
		utcStart, _ := DayRange(instant)
		localStart, _ := DayRange(instant.In(loc))

		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).Unix(), utcStart)
		assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, loc).Unix(), localStart)
	})
}
