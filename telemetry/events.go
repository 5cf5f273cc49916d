// Package telemetry provides session event counting, windowed stats and
// experiment output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBounce  EventType = iota // ball touched the boundary
	EventShrink                   // boundary radius decremented
	EventGrow                     // shared ball radius increased
	EventContact                  // ball-ball contacts resolved this tick
	EventSpawn                    // ball added
	EventFreeze                   // timer froze the population
	EventReset                    // session reset
)

// String returns the event name used in logs.
func (t EventType) String() string {
	switch t {
	case EventBounce:
		return "bounce"
	case EventShrink:
		return "shrink"
	case EventGrow:
		return "grow"
	case EventContact:
		return "contact"
	case EventSpawn:
		return "spawn"
	case EventFreeze:
		return "freeze"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Reset reasons.
const (
	ResetStart    = "start"
	ResetDepleted = "depleted"
	ResetManual   = "manual"
)

// Event represents a single telemetry event.
type Event struct {
	Type   EventType
	Tick   int64
	BallID uint32

	// Optional fields depending on event type
	Count  int    // contacts resolved (contact) or balls frozen (freeze)
	Reason string // reset reason
}

// NewBounceEvent creates a boundary bounce event.
func NewBounceEvent(tick int64, ballID uint32) Event {
	return Event{Type: EventBounce, Tick: tick, BallID: ballID}
}

// NewContactEvent creates an event for n ball-ball contacts in one tick.
func NewContactEvent(tick int64, n int) Event {
	return Event{Type: EventContact, Tick: tick, Count: n}
}

// NewFreezeEvent creates a freeze event covering n balls.
func NewFreezeEvent(tick int64, n int) Event {
	return Event{Type: EventFreeze, Tick: tick, Count: n}
}

// NewResetEvent creates a session reset event.
func NewResetEvent(tick int64, reason string) Event {
	return Event{Type: EventReset, Tick: tick, Reason: reason}
}
