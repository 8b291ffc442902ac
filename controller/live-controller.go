package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pageant/presence"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type LiveController struct {
	store presence.Store
	hub   *presence.Hub
}

func NewLiveController(store presence.Store, hub *presence.Hub) *LiveController {
	controller := &LiveController{
		store: store,
		hub:   hub,
	}
	controller.StartPresenceSweeper()
	return controller
}

func setupLiveController(store presence.Store, hub *presence.Hub) []RouteInfo {
	e := NewLiveController(store, hub)
	routes := []RouteInfo{
		{Method: "GET", Path: "/ws", HandlerFunc: e.WebSocketHandler, Authenticated: true},
		{Method: "GET", Path: "/active-judges", HandlerFunc: e.getActiveJudgesHandler(), Authenticated: true},
	}
	return routes
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// allow any host origin to connect to the websocket
		return true
	},
}

// ClientMessage is the envelope clients send over the live channel.
type ClientMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// StartPresenceSweeper drops judges whose connection stopped answering
// pings and tells everyone who is left.
func (e *LiveController) StartPresenceSweeper() {
	go func() {
		for {
			time.Sleep(30 * time.Second)
			if removed := e.store.Sweep(); len(removed) > 0 {
				e.hub.Broadcast(presence.JudgesStatusEvent(e.store.Active()))
			}
		}
	}()
}

// @id LiveWebSocket
// @Description Websocket for live updates. Clients announce themselves with judge-online and subscribe to an event's room with join-event; the server pushes judges-status, phase-changed and judge-lock-changed events.
// @Tags live
// @Router /ws [get]
// @Success 200 {object} presence.Event
func (e *LiveController) WebSocketHandler(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.NotFound(c.Writer, c.Request)
		return
	}
	conn := presence.NewConn(ws)
	defer conn.Close()

	e.hub.Add(conn)
	claims := getClaims(c)

	// a fresh subscriber immediately learns who is online
	if err := conn.WriteJSON(presence.JudgesStatusEvent(e.store.Active())); err != nil {
		e.hub.Remove(conn)
		return
	}

	for {
		var message ClientMessage
		if err := ws.ReadJSON(&message); err != nil {
			break
		}
		switch message.Event {
		case "judge-online":
			if claims == nil || claims.JudgeId == 0 {
				continue
			}
			e.store.Register(claims.JudgeId, conn)
			e.hub.Broadcast(presence.JudgesStatusEvent(e.store.Active()))
		case "join-event":
			var data struct {
				EventId int `json:"eventId"`
			}
			if err := json.Unmarshal(message.Data, &data); err != nil || data.EventId == 0 {
				continue
			}
			e.hub.Join(data.EventId, conn)
		case "judge-heartbeat":
			// advisory; liveness is probed by the sweeper
			if claims != nil && claims.JudgeId != 0 {
				fmt.Printf("Heartbeat from judge %d\n", claims.JudgeId)
			}
		}
	}

	e.hub.Remove(conn)
	if e.store.Unregister(conn) {
		e.hub.Broadcast(presence.JudgesStatusEvent(e.store.Active()))
	}
}

// @Description Fetches the ids of judges with a live connection
// @Tags live
// @Produce json
// @Success 200 {object} map[string][]int
// @Router /active-judges [get]
func (e *LiveController) getActiveJudgesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"activeJudges": e.store.Active()})
	}
}
