// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// Clock supplies the current business date.
type Clock interface {
	// Today returns the current calendar date in the business timezone.
	Today() valueobject.CalendarDate
}
