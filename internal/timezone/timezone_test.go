package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "Europe/Madrid", Location("Europe/Madrid").String())
}

func TestDayKey_UsesGivenZone(t *testing.T) {
	loc := time.FixedZone("UTC-6", -6*3600)

	// 02:30 UTC do dia 11 ainda é dia 10 em UTC-6.
	instant := time.Date(2026, 1, 11, 2, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-01-10", DayKey(instant, loc))
	assert.Equal(t, "2026-01-11", DayKey(instant, time.UTC))
}

func TestParseISO(t *testing.T) {
	loc := time.FixedZone("UTC-6", -6*3600)

	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "rfc3339 with offset",
			raw:  "2026-01-10T20:00:00Z",
			want: time.Date(2026, 1, 10, 20, 0, 0, 0, time.UTC),
		},
		{
			name: "no offset is local",
			raw:  "2026-01-10T20:00:00",
			want: time.Date(2026, 1, 10, 20, 0, 0, 0, loc),
		},
		{
			name: "space separated with fraction and offset",
			raw:  "2026-01-10 20:00:00.123456+00:00",
			want: time.Date(2026, 1, 10, 20, 0, 0, 123456000, time.UTC),
		},
		{
			name: "date only",
			raw:  "2026-01-10",
			want: time.Date(2026, 1, 10, 0, 0, 0, 0, loc),
		},
		{name: "empty", raw: "   ", wantErr: true},
		{name: "garbage", raw: "mañana", wantErr: true},
		{name: "impossible date", raw: "2026-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISO(tt.raw, loc)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestDayBoundsAndMonthBounds(t *testing.T) {
	loc := time.FixedZone("UTC-6", -6*3600)

	start, end := DayBounds(time.Date(2026, 1, 10, 23, 59, 0, 0, loc), loc)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 1, 11, 0, 0, 0, 0, loc), end)

	mStart, mEnd := MonthBounds(2026, time.February, loc)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, loc), mStart)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, loc), mEnd)
}
