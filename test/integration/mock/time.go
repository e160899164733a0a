package mock

import (
	"sync"
	"time"

	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// Time is a controllable business clock. It starts at the real current
// instant and keeps ticking from whatever instant it was last set to.
type Time struct {
	mu               sync.RWMutex
	loc              *time.Location
	currentStartTime time.Time
	updatedAt        time.Time
}

func NewTime(loc *time.Location) *Time {
	if loc == nil {
		loc = time.UTC
	}
	return &Time{
		loc:              loc,
		currentStartTime: time.Now(),
		updatedAt:        time.Now(),
	}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentStartTime = currentTime
	t.updatedAt = time.Now()
}

// SetCurrentDate moves the clock to noon of date in the business timezone.
func (t *Time) SetCurrentDate(date valueobject.CalendarDate) {
	t.SetCurrentTime(date.In(t.loc).Add(12 * time.Hour))
}

// Reset puts the clock back on the real current instant.
func (t *Time) Reset() {
	t.SetCurrentTime(time.Now())
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentStartTime.Add(time.Since(t.updatedAt))
}

// Today returns the current business date, satisfying adapter.Clock.
func (t *Time) Today() valueobject.CalendarDate {
	return valueobject.DateOf(t.Now().In(t.loc))
}
