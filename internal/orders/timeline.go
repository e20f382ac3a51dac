package orders

import (
	"fmt"
	"time"

	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
	"github.com/hoangtv-dev/bemart-backend/pkg/types"
)

var statusNotes = map[enums.OrderStatus]string{
	enums.OrderStatusPending:   "Order created",
	enums.OrderStatusConfirmed: "Order confirmed",
	enums.OrderStatusShipping:  "Order is being delivered",
	enums.OrderStatusDelivered: "Order delivered successfully",
	enums.OrderStatusCancelled: "Order cancelled",
}

// StatusNote returns the canned human-readable note for a status, falling
// back to a generic message for values without one.
func StatusNote(status enums.OrderStatus) string {
	if note, ok := statusNotes[status]; ok {
		return note
	}
	return fmt.Sprintf("Status changed to %s", status)
}

// InitialTimeline seeds the audit trail every order starts with: exactly one
// pending entry.
func InitialTimeline(now time.Time) types.Timeline {
	return types.Timeline{{
		Status:    string(enums.OrderStatusPending),
		Note:      StatusNote(enums.OrderStatusPending),
		CreatedAt: now,
	}}
}

// AppendStatus returns the timeline with one new entry for the status change.
// Prior entries are never touched.
func AppendStatus(timeline types.Timeline, status enums.OrderStatus, now time.Time) types.Timeline {
	return append(timeline, types.TimelineEntry{
		Status:    string(status),
		Note:      StatusNote(status),
		CreatedAt: now,
	})
}
