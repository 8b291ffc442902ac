package presence

import (
	"sync"

	"pageant/repository"
)

// Event is the envelope every live message travels in.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

func JudgesStatusEvent(activeJudgeIds []int) Event {
	return Event{Name: "judges-status", Data: map[string]any{"activeJudges": activeJudgeIds}}
}

func PhaseChangedEvent(phase repository.Phase) Event {
	return Event{Name: "phase-changed", Data: map[string]any{"currentPhase": phase}}
}

func JudgeLockChangedEvent(judgeId int, phase repository.Phase, locked bool) Event {
	return Event{Name: "judge-lock-changed", Data: map[string]any{
		"judgeId": judgeId,
		"phase":   phase,
		"locked":  locked,
	}}
}

// Hub fans live events out to subscribed connections. Global events go
// to every connection, room events only to connections that joined the
// event's room. Delivery is best effort: a connection that fails a
// write is closed and dropped.
type Hub struct {
	mu    sync.Mutex
	conns map[*Conn]bool
	rooms map[int]map[*Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*Conn]bool),
		rooms: make(map[int]map[*Conn]bool),
	}
}

func (h *Hub) Add(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
}

func (h *Hub) Join(eventId int, conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[eventId]
	if room == nil {
		room = make(map[*Conn]bool)
		h.rooms[eventId] = room
	}
	room[conn] = true
}

func (h *Hub) Remove(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(conn)
}

func (h *Hub) remove(conn *Conn) {
	delete(h.conns, conn)
	for eventId, room := range h.rooms {
		delete(room, conn)
		if len(room) == 0 {
			delete(h.rooms, eventId)
		}
	}
}

func (h *Hub) Broadcast(event Event) {
	h.mu.Lock()
	targets := make([]*Conn, 0, len(h.conns))
	for conn := range h.conns {
		targets = append(targets, conn)
	}
	h.mu.Unlock()
	h.send(targets, event)
}

func (h *Hub) BroadcastRoom(eventId int, event Event) {
	h.mu.Lock()
	targets := make([]*Conn, 0, len(h.rooms[eventId]))
	for conn := range h.rooms[eventId] {
		targets = append(targets, conn)
	}
	h.mu.Unlock()
	h.send(targets, event)
}

func (h *Hub) send(targets []*Conn, event Event) {
	for _, conn := range targets {
		if err := conn.WriteJSON(event); err != nil {
			conn.Close()
			h.mu.Lock()
			h.remove(conn)
			h.mu.Unlock()
		}
	}
}
