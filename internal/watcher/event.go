package watcher

import "time"

// EventType represents the kind of settled change.
type EventType int

const (
	// EventModified is emitted once a watched file has been written and stopped changing.
	EventModified EventType = iota
	// EventRemoved is emitted when a watched file no longer exists after settling.
	EventRemoved
)

// String returns the string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventModified:
		return "modified"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is a settled change to one watched file.
type Event struct {
	Type EventType
	// Path is the absolute path of the watched file.
	Path    string
	Size    int64
	ModTime time.Time
}
