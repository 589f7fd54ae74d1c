package csvlog

import "time"

// SetClock replaces the save-time source of l.
func SetClock(l *Log, now func() time.Time) {
	l.now = now
}
