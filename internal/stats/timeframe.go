package stats

import (
	"math"
	"time"

	"trade-journal-go/internal/models"
)

// TimeFrame selects the time window trades are filtered to.
type TimeFrame string

const (
	FrameAll    TimeFrame = "ALL"
	FrameToday  TimeFrame = "TODAY"
	FrameWeek   TimeFrame = "WEEK"
	FrameMonth  TimeFrame = "MONTH"
	FrameYTD    TimeFrame = "YTD"
	FrameYear   TimeFrame = "YEAR"
	FrameCustom TimeFrame = "CUSTOM"
)

// unboundedEnd is the sentinel upper bound used by every non-custom frame.
// Non-custom frames only ever restrict the lower bound, so future-dated
// trades always pass.
const unboundedEnd = int64(math.MaxInt64)

const millisPerDay = int64(24 * time.Hour / time.Millisecond)

// Window is a closed [Start, End] interval in epoch milliseconds.
type Window struct {
	Start int64
	End   int64
}

// Contains reports whether ts falls within the window, bounds inclusive.
func (w Window) Contains(ts int64) bool {
	return ts >= w.Start && ts <= w.End
}

// ResolveWindow maps a TimeFrame to a concrete interval. customStart and
// customEnd are ISO date strings and are consulted only for FrameCustom;
// either may be empty. now anchors the relative frames.
func ResolveWindow(frame TimeFrame, customStart, customEnd string, now time.Time) Window {
	switch frame {
	case FrameToday:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return Window{Start: midnight.UnixMilli(), End: unboundedEnd}
	case FrameWeek:
		return Window{Start: now.AddDate(0, 0, -7).UnixMilli(), End: unboundedEnd}
	case FrameMonth:
		return Window{Start: now.AddDate(0, 0, -30).UnixMilli(), End: unboundedEnd}
	case FrameYTD:
		jan1 := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return Window{Start: jan1.UnixMilli(), End: unboundedEnd}
	case FrameYear:
		return Window{Start: now.AddDate(-1, 0, 0).UnixMilli(), End: unboundedEnd}
	case FrameCustom:
		w := Window{Start: 0, End: unboundedEnd}
		if ts, err := models.DateTimestamp(customStart); err == nil && customStart != "" {
			w.Start = ts
		}
		if d, err := time.ParseInLocation(models.DateLayout, customEnd, time.Local); err == nil && customEnd != "" {
			// Normalize to the end of the chosen day so the boundary
			// date itself is included.
			w.End = d.AddDate(0, 0, 1).UnixMilli() - 1
		}
		return w
	default: // FrameAll and anything unrecognized
		return Window{Start: 0, End: unboundedEnd}
	}
}
