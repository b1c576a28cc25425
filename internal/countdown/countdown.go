package countdown

import (
	"fmt"
	"time"
)

// CelebrationText replaces the countdown once the target has passed.
const CelebrationText = "Happy Birthday! 🎉"

// The target is April 8, 00:00:00 of the current year.
const (
	TargetMonth = time.April
	TargetDay   = 8
)

// TickInterval is the period of the countdown tick.
const TickInterval = time.Second

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Target returns the target instant in the year and location of now.
func Target(now time.Time) time.Time {
	return time.Date(now.Year(), TargetMonth, TargetDay, 0, 0, 0, 0, now.Location())
}

// Remaining is the decomposed time left until the target.
type Remaining struct {
	Days    int64 `json:"days" yaml:"days"`
	Hours   int64 `json:"hours" yaml:"hours"`
	Minutes int64 `json:"minutes" yaml:"minutes"`
	Seconds int64 `json:"seconds" yaml:"seconds"`

	// Millis is the raw difference; zero or negative once expired.
	Millis int64 `json:"millis" yaml:"millis"`
}

// Compute decomposes target-now using whole milliseconds.
// Components are zero when the target has been reached.
func Compute(now, target time.Time) Remaining {
	left := target.UnixMilli() - now.UnixMilli()
	if left <= 0 {
		return Remaining{Millis: left}
	}

	return Remaining{
		Days:    left / msPerDay,
		Hours:   (left % msPerDay) / msPerHour,
		Minutes: (left % msPerHour) / msPerMinute,
		Seconds: (left % msPerMinute) / msPerSecond,
		Millis:  left,
	}
}

// Expired reports whether the target has been reached.
func (r Remaining) Expired() bool {
	return r.Millis <= 0
}

// String formats the remaining time, or the celebration text once expired.
func (r Remaining) String() string {
	if r.Expired() {
		return CelebrationText
	}
	return fmt.Sprintf("%dd %dh %dm %ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}

// Format returns the countdown string for now relative to target.
func Format(now, target time.Time) string {
	return Compute(now, target).String()
}

// Snapshot is a point-in-time view of the countdown, suitable for encoding.
type Snapshot struct {
	Target    time.Time `json:"target" yaml:"target"`
	Now       time.Time `json:"now" yaml:"now"`
	Countdown string    `json:"countdown" yaml:"countdown"`
	Expired   bool      `json:"expired" yaml:"expired"`
	Remaining Remaining `json:"remaining" yaml:"remaining"`
}

// TakeSnapshot computes a Snapshot for now relative to target.
func TakeSnapshot(now, target time.Time) Snapshot {
	r := Compute(now, target)
	return Snapshot{
		Target:    target,
		Now:       now,
		Countdown: r.String(),
		Expired:   r.Expired(),
		Remaining: r,
	}
}
