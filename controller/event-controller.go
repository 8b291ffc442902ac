package controller

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"pageant/config"
	"pageant/presence"
	"pageant/repository"
	"pageant/service"
	"pageant/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EventController struct {
	eventService *service.EventService
	hub          *presence.Hub
}

func NewEventController(hub *presence.Hub) *EventController {
	return &EventController{
		eventService: service.NewEventService(),
		hub:          hub,
	}
}

func setupEventController(hub *presence.Hub) []RouteInfo {
	e := NewEventController(hub)
	basePath := "/events"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getEventsHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "POST", Path: "", HandlerFunc: e.createEventHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "GET", Path: "/active", HandlerFunc: e.getActiveEventHandler()},
		{Method: "GET", Path: "/:event_id", HandlerFunc: e.getEventHandler(), Authenticated: true},
		{Method: "PATCH", Path: "/:event_id", HandlerFunc: e.updateEventHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "DELETE", Path: "/:event_id", HandlerFunc: e.deleteEventHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "PATCH", Path: "/:event_id/phase", HandlerFunc: e.advancePhaseHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type EventCreate struct {
	Name                string                         `json:"name" binding:"required"`
	Date                time.Time                      `json:"date" binding:"required"`
	InstitutionName     string                         `json:"institutionName"`
	InstitutionAddress  string                         `json:"institutionAddress"`
	Venue               string                         `json:"venue"`
	SeparateGenders     bool                           `json:"separateGenders"`
	HasTwoPhases        bool                           `json:"hasTwoPhases"`
	FinalistsCount      int                            `json:"finalistsCount"`
	TieBreakingStrategy repository.TieBreakingStrategy `json:"tieBreakingStrategy"`
}

func (e EventCreate) toModel() *repository.Event {
	strategy := e.TieBreakingStrategy
	if strategy == "" {
		strategy = repository.TieBreakIncludeTies
	}
	return &repository.Event{
		Name:                e.Name,
		Date:                e.Date,
		InstitutionName:     e.InstitutionName,
		InstitutionAddress:  e.InstitutionAddress,
		Venue:               e.Venue,
		SeparateGenders:     e.SeparateGenders,
		HasTwoPhases:        e.HasTwoPhases,
		FinalistsCount:      e.FinalistsCount,
		TieBreakingStrategy: strategy,
	}
}

// @Description Fetches all events
// @Tags event
// @Produce json
// @Success 200 {array} repository.Event
// @Router /events [get]
func (e *EventController) getEventsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := e.eventService.GetAllEvents()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, events)
	}
}

// @Description Fetches the active event with its full roster
// @Tags event
// @Produce json
// @Success 200 {object} repository.Event
// @Router /events/active [get]
func (e *EventController) getActiveEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := e.eventService.GetActiveEvent("Judges", "Contestants", "Criteria")
		if err != nil {
			c.JSON(404, gin.H{"error": "No active event"})
			return
		}
		event.Judges = utils.Map(event.Judges, redactAccessCode)
		c.JSON(200, event)
	}
}

// @Description Creates an event
// @Tags event
// @Accept json
// @Produce json
// @Param event body EventCreate true "Event to create"
// @Success 201 {object} repository.Event
// @Router /events [post]
func (e *EventController) createEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var eventCreate EventCreate
		if err := c.BindJSON(&eventCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event, err := e.eventService.CreateEvent(eventCreate.toModel())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, event)
	}
}

// @Description Gets an event by id
// @Tags event
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {object} repository.Event
// @Router /events/{event_id} [get]
func (e *EventController) getEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event, err := e.eventService.GetEventById(eventId, "Judges", "Contestants", "Criteria")
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(404, gin.H{"error": "Event not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		event.Judges = utils.Map(event.Judges, redactAccessCode)
		c.JSON(200, event)
	}
}

// @Description Updates an event
// @Tags event
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param event body EventCreate true "Event fields to update"
// @Success 200 {object} repository.Event
// @Router /events/{event_id} [patch]
func (e *EventController) updateEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event, err := e.eventService.GetEventById(eventId)
		if err != nil {
			c.JSON(404, gin.H{"error": "Event not found"})
			return
		}
		if err := c.BindJSON(event); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event.Id = eventId
		event, err = e.eventService.UpdateEvent(event)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, event)
	}
}

// @Description Deletes an event
// @Tags event
// @Param event_id path int true "Event Id"
// @Success 204
// @Router /events/{event_id} [delete]
func (e *EventController) deleteEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.eventService.DeleteEvent(eventId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(204, nil)
	}
}

type PhaseUpdate struct {
	Phase repository.Phase `json:"phase" binding:"required"`
}

// @Description Moves the event into the given phase. Refused while manual finalist ties are unresolved.
// @Tags event
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param phase body PhaseUpdate true "Target phase"
// @Success 200 {object} repository.Event
// @Router /events/{event_id}/phase [patch]
func (e *EventController) advancePhaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var update PhaseUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event, changed, err := e.eventService.AdvancePhase(eventId, update.Phase)
		if err != nil {
			if errors.Is(err, service.ErrUnresolvedTies) {
				c.JSON(409, gin.H{"error": err.Error()})
			} else {
				c.JSON(400, gin.H{"error": err.Error()})
			}
			return
		}
		if changed {
			e.hub.BroadcastRoom(eventId, presence.PhaseChangedEvent(event.CurrentPhase))
			if payload, err := json.Marshal(gin.H{"phase": event.CurrentPhase}); err == nil {
				config.PublishAuditRecord(eventId, "phase-changed", payload)
			}
		}
		c.JSON(200, event)
	}
}
