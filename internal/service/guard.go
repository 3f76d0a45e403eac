package service

import "sync"

// SessionGuard serializes work per game id. Each id gets its own mutex,
// created on first use and dropped once no caller holds or waits for it.
type SessionGuard struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessionGuard() *SessionGuard {
	return &SessionGuard{
		locks: make(map[string]*sessionLock),
	}
}

// Lock blocks until id is free and returns the matching unlock function.
func (g *SessionGuard) Lock(id string) func() {
	g.mu.Lock()
	l, ok := g.locks[id]
	if !ok {
		l = &sessionLock{}
		g.locks[id] = l
	}
	l.refs++
	g.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		g.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(g.locks, id)
		}
		g.mu.Unlock()
	}
}

// Active returns the number of ids with an action in flight.
func (g *SessionGuard) Active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.locks)
}
