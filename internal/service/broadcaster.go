package service

// Broadcaster fans events out to connected admin dashboards.
// Implementations must not block the caller.
type Broadcaster interface {
	Broadcast(eventType string, payload interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, interface{}) {}
