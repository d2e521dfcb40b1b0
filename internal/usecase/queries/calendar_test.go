//go:build unit

package queries

import (
	"errors"
	"testing"
	"time"

	"lessonbook/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarPeriod(t *testing.T) {
	utc := time.UTC
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	tests := []struct {
		name     string
		view     string
		anchor   time.Time
		loc      *time.Location
		wantFrom string
		wantTo   string // exclusive
	}{
		{
			name:     "week anchored mid-week starts on Sunday",
			view:     CalendarViewWeek,
			anchor:   time.Date(2025, 6, 4, 15, 30, 0, 0, utc), // Wednesday
			loc:      utc,
			wantFrom: "2025-06-01",
			wantTo:   "2025-06-08",
		},
		{
			name:     "week anchored on Sunday starts that day",
			view:     CalendarViewWeek,
			anchor:   time.Date(2025, 6, 1, 0, 0, 0, 0, utc),
			loc:      utc,
			wantFrom: "2025-06-01",
			wantTo:   "2025-06-08",
		},
		{
			name:     "month spans the calendar month",
			view:     CalendarViewMonth,
			anchor:   time.Date(2025, 6, 15, 12, 0, 0, 0, utc),
			loc:      utc,
			wantFrom: "2025-06-01",
			wantTo:   "2025-07-01",
		},
		{
			name:     "month rolls over the year boundary",
			view:     CalendarViewMonth,
			anchor:   time.Date(2025, 12, 31, 23, 0, 0, 0, utc),
			loc:      utc,
			wantFrom: "2025-12-01",
			wantTo:   "2026-01-01",
		},
		{
			name: "anchor is projected into the booking timezone first",
			view: CalendarViewWeek,
			// 2025-06-07 20:00 UTC is already Sunday 2025-06-08 05:00 in Tokyo.
			anchor:   time.Date(2025, 6, 7, 20, 0, 0, 0, utc),
			loc:      tokyo,
			wantFrom: "2025-06-08",
			wantTo:   "2025-06-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := calendarPeriod(tt.view, tt.anchor, tt.loc)
			require.NoError(t, err)

			got := []string{from.Format(dateLayout), to.Format(dateLayout)}
			want := []string{tt.wantFrom, tt.wantTo}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("period mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("unknown view is rejected", func(t *testing.T) {
		_, _, err := calendarPeriod("decade", time.Now(), utc)
		assert.True(t, errors.Is(err, errs.ErrDomainValidation))
	})
}
