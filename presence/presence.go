package presence

import (
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Conn wraps a websocket connection with a write lock; gorilla allows
// only one concurrent writer per connection.
type Conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

func (c *Conn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

func (c *Conn) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
}

func (c *Conn) Close() error {
	return c.ws.Close()
}

// Store tracks which judges currently hold a live connection. Presence
// is process-wide: a judge is active or not, regardless of event.
type Store interface {
	// Register maps a judge to its connection, replacing any previous
	// mapping (reconnection).
	Register(judgeId int, conn *Conn)
	// Unregister removes the judge mapped to this connection. A judge
	// that already reconnected under a different connection is kept.
	Unregister(conn *Conn) bool
	// ForceLogout closes the judge's connection and drops the mapping.
	ForceLogout(judgeId int) bool
	// Sweep probes every mapped connection and drops the dead ones,
	// returning the judge ids that were removed.
	Sweep() []int
	// Active returns the currently connected judge ids.
	Active() []int
}

type MemoryStore struct {
	mu     sync.Mutex
	judges map[int]*Conn
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{judges: make(map[int]*Conn)}
}

func (s *MemoryStore) Register(judgeId int, conn *Conn) {
	s.mu.Lock()
	old := s.judges[judgeId]
	s.judges[judgeId] = conn
	s.mu.Unlock()
	if old != nil && old != conn {
		old.Close()
	}
}

func (s *MemoryStore) Unregister(conn *Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for judgeId, mapped := range s.judges {
		if mapped == conn {
			delete(s.judges, judgeId)
			return true
		}
	}
	return false
}

func (s *MemoryStore) ForceLogout(judgeId int) bool {
	s.mu.Lock()
	conn, ok := s.judges[judgeId]
	delete(s.judges, judgeId)
	s.mu.Unlock()
	if ok {
		conn.Close()
	}
	return ok
}

func (s *MemoryStore) Sweep() []int {
	s.mu.Lock()
	probe := make(map[int]*Conn, len(s.judges))
	for judgeId, conn := range s.judges {
		probe[judgeId] = conn
	}
	s.mu.Unlock()

	removed := make([]int, 0)
	for judgeId, conn := range probe {
		if conn.Ping() == nil {
			continue
		}
		conn.Close()
		s.mu.Lock()
		// only remove if the judge did not reconnect meanwhile
		if s.judges[judgeId] == conn {
			delete(s.judges, judgeId)
			removed = append(removed, judgeId)
		}
		s.mu.Unlock()
	}
	return removed
}

func (s *MemoryStore) Active() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.judges))
	for judgeId := range s.judges {
		ids = append(ids, judgeId)
	}
	sort.Ints(ids)
	return ids
}
