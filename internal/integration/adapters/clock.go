package adapters

import (
	"time"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// businessClock reports dates in the desk's timezone.
type businessClock struct {
	loc *time.Location
	now func() time.Time
}

// NewBusinessClock creates a clock for the given location.
func NewBusinessClock(loc *time.Location) adapter.Clock {
	return NewClockWithSource(loc, time.Now)
}

// NewClockWithSource creates a clock reading the current instant from now.
func NewClockWithSource(loc *time.Location, now func() time.Time) adapter.Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &businessClock{loc: loc, now: now}
}

// Today returns the current calendar date in the business timezone.
func (c *businessClock) Today() valueobject.CalendarDate {
	return valueobject.DateOf(c.now().In(c.loc))
}
