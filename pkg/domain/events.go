package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	// EventAdvance is emitted after the cursor moved forward by one.
	EventAdvance EventType = "advance"
	// EventDone is emitted when an exhausted session invokes its completion callback.
	EventDone EventType = "done"
	// EventForward is emitted when an exhausted session forwards Next to its parent.
	EventForward EventType = "forward"
	// EventReset is emitted after the cursor was rewound to zero.
	EventReset EventType = "reset"
	// EventInsert is emitted after units were appended to the sequence.
	EventInsert EventType = "insert"
	// EventChildren is emitted after the declared children were replaced.
	EventChildren EventType = "children"
	// EventMount is emitted after a session was returned to its freshly mounted state.
	EventMount EventType = "mount"
)

// Event describes a transition of a reveal session.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Session   string    `json:"session,omitempty"`
	Index     int       `json:"index"`
	Visible   int       `json:"visible"`
	Length    int       `json:"length"`
	// Count holds the number of units appended by an insert.
	Count int `json:"count,omitempty"`
}
