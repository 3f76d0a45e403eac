package service

// Broadcaster publishes an event to every subscriber of a game (avoids import cycle)
type Broadcaster interface {
	Publish(gameID, event string, payload interface{})
}

type noopBroadcaster struct{}

func (noopBroadcaster) Publish(string, string, interface{}) {}
