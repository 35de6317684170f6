// Package timegrid converts between wall-clock times, window-relative
// minutes, and vertical pixel offsets for the day timeline.
package timegrid

import "fmt"

// Grid granularities offered to the user, in minutes.
var ValidGridMinutes = []int{5, 10, 15, 30}

// Window describes the visible portion of a day and its vertical scale.
// EndHour may exceed 24 so the window can roll past midnight: a window of
// 7-25 runs from 07:00 until 01:00 the next day. Times earlier than
// StartHour are interpreted as belonging to that next day.
type Window struct {
	StartHour   int
	EndHour     int
	HeightPx    float64
	GridMinutes int
}

// TotalMinutes returns the minute span of the window. A degenerate window
// (zero or negative span) reports 0 and degrades to a zero-height layout
// rather than failing.
func (w Window) TotalMinutes() int {
	span := (w.EndHour - w.StartHour) * 60
	if span < 0 {
		return 0
	}
	return span
}

// StartMinutes returns the window's first minute on the logical day axis.
func (w Window) StartMinutes() int {
	return w.StartHour * 60
}

// EndMinutes returns the window's last minute on the logical day axis.
func (w Window) EndMinutes() int {
	return w.StartMinutes() + w.TotalMinutes()
}

// PixelsPerMinute returns the vertical scale. Zero for degenerate windows.
func (w Window) PixelsPerMinute() float64 {
	total := w.TotalMinutes()
	if total <= 0 || w.HeightPx <= 0 {
		return 0
	}
	return w.HeightPx / float64(total)
}

// TimeToMinutes converts "HH:MM" to minutes on the logical day axis.
// Hours earlier than StartHour are shifted by 24h so every in-window time
// lands in one increasing numeric range even when the window spans midnight.
// Invalid input converts to 0.
func (w Window) TimeToMinutes(t string) int {
	h, m, ok := parseClock(t)
	if !ok {
		return 0
	}
	if h < w.StartHour {
		h += 24
	}
	return h*60 + m
}

// MinutesToTime converts logical-day minutes back to "HH:MM", taking the
// hour mod 24 for display.
func MinutesToTime(mins int) string {
	if mins < 0 {
		mins = 0
	}
	h := (mins / 60) % 24
	return fmt.Sprintf("%02d:%02d", h, mins%60)
}

// MinutesToPixels converts logical-day minutes to a vertical offset from the
// top of the window.
func (w Window) MinutesToPixels(mins int) float64 {
	return float64(mins-w.StartMinutes()) * w.PixelsPerMinute()
}

// PixelsToMinutes converts a vertical offset back to logical-day minutes,
// clamped to the window span.
func (w Window) PixelsToMinutes(px float64) int {
	ppm := w.PixelsPerMinute()
	if ppm == 0 {
		return w.StartMinutes()
	}
	mins := w.StartMinutes() + int(px/ppm+0.5)
	if mins < w.StartMinutes() {
		return w.StartMinutes()
	}
	if mins > w.EndMinutes() {
		return w.EndMinutes()
	}
	return mins
}

// Snap rounds minutes to the nearest multiple of the grid granularity.
// It is applied on every create/drag update, never on stored data.
func (w Window) Snap(mins int) int {
	g := w.GridMinutes
	if g <= 1 {
		return mins
	}
	return (mins + g/2) / g * g
}

// parseClock parses "HH:MM" without allocating. Rejects malformed input.
func parseClock(t string) (h, m int, ok bool) {
	if len(t) != 5 || t[2] != ':' {
		return 0, 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return 0, 0, false
		}
	}
	h = int(t[0]-'0')*10 + int(t[1]-'0')
	m = int(t[3]-'0')*10 + int(t[4]-'0')
	if h > 23 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}
