package views

import (
	"fmt"
	"time"

	"github.com/AdamBeresnev/courtside/internal/hoops"
)

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func FormatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func FormatAvg(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func FormatJersey(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("#%d", *n)
}

func FormatTipOff(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Mon Jan 2, 3:04 PM")
}

func FormatDay(t time.Time) string {
	return t.Format("Monday, January 2")
}

// formatInputTime fills a datetime-local input.
func formatInputTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02T15:04")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func statusLabel(s hoops.GameStatus) string {
	switch s {
	case hoops.GameInProgress:
		return "Live"
	case hoops.GameCompleted:
		return "Final"
	case hoops.GameCancelled:
		return "Cancelled"
	}
	return "Scheduled"
}
