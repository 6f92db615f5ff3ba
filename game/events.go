package game

import "github.com/jakecoffman/cp"

type EventKind string

const (
	EventJump        EventKind = "jump"
	EventDash        EventKind = "dash"
	EventShoot       EventKind = "shoot"
	EventHit         EventKind = "hit"
	EventEnemyKilled EventKind = "enemy_killed"
	EventPlayerDied  EventKind = "player_died"
	EventLevelLoaded EventKind = "level_loaded"
	EventRunComplete EventKind = "run_complete"
)

// Event is something the session did that presentation layers (audio,
// persistence, logging) may react to.
type Event struct {
	Kind   EventKind
	Level  int
	Deaths int
	Pos    cp.Vector
}

// Cue is the audio cue name for the event, or "" for silent events.
func (e Event) Cue() string {
	switch e.Kind {
	case EventJump, EventDash, EventShoot, EventHit:
		return string(e.Kind)
	case EventEnemyKilled:
		return string(EventHit)
	}
	return ""
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
