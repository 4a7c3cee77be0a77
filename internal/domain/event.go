package domain

import "time"

// Grouping event actions.
const (
	ActionCycle    = "cycle"
	ActionClear    = "clear"
	ActionDefaults = "defaults"
)

// GroupingEvent records one user interaction with the grouping state. Events
// are published to the optional activity topic so downstream consumers can
// follow how viewers explore the bands.
type GroupingEvent struct {
	Action     string    `json:"action"`
	Band       *int      `json:"band,omitempty"` // set for cycle actions only
	Grouping   Grouping  `json:"grouping"`       // state after the action
	OccurredAt time.Time `json:"occurred_at"`
}

// NewGroupingEvent stamps an event with the domain clock.
func NewGroupingEvent(action string, band *int, after Grouping) GroupingEvent {
	return GroupingEvent{
		Action:     action,
		Band:       band,
		Grouping:   after,
		OccurredAt: clock.Now(),
	}
}
