package controller

import (
	"strconv"
	"time"

	"pageant/repository"
	"pageant/service"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
)

type ResultController struct {
	resultService *service.ResultService
	eventService  *service.EventService
}

func NewResultController() *ResultController {
	return &ResultController{
		resultService: service.NewResultService(),
		eventService:  service.NewEventService(),
	}
}

func setupResultController(cacheStore persistence.CacheStore) []RouteInfo {
	e := NewResultController()
	basePath := "/events/:event_id/results"
	cached := func(handler gin.HandlerFunc) gin.HandlerFunc {
		return cache.CachePage(cacheStore, 5*time.Second, handler)
	}
	routes := []RouteInfo{
		{Method: "GET", Path: "/rankings", HandlerFunc: cached(e.getRankingsHandler()), Authenticated: true},
		{Method: "GET", Path: "/categories", HandlerFunc: cached(e.getCategoryRankingsHandler()), Authenticated: true},
		{Method: "GET", Path: "/finalists", HandlerFunc: e.getFinalistsHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "GET", Path: "/unresolved-ties", HandlerFunc: e.getUnresolvedTiesHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

func (e *ResultController) resolvePhase(c *gin.Context, eventId int) (repository.Phase, bool) {
	if raw := c.Query("phase"); raw != "" {
		return repository.Phase(raw), true
	}
	event, err := e.eventService.GetEventById(eventId)
	if err != nil {
		c.JSON(404, gin.H{"error": "Event not found"})
		return "", false
	}
	return event.CurrentPhase, true
}

// @Description Fetches the rank table of every bracket, defaulting to the current phase
// @Tags result
// @Produce json
// @Param event_id path int true "Event Id"
// @Param phase query string false "Phase override"
// @Success 200 {array} service.BracketRanking
// @Router /events/{event_id}/results/rankings [get]
func (e *ResultController) getRankingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		phase, ok := e.resolvePhase(c, eventId)
		if !ok {
			return
		}
		rankings, err := e.resultService.GetRankings(eventId, phase)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, rankings)
	}
}

// @Description Fetches per-category standings for special awards
// @Tags result
// @Produce json
// @Param event_id path int true "Event Id"
// @Param phase query string false "Phase override"
// @Success 200 {array} service.CategoryRanking
// @Router /events/{event_id}/results/categories [get]
func (e *ResultController) getCategoryRankingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		phase, ok := e.resolvePhase(c, eventId)
		if !ok {
			return
		}
		rankings, err := e.resultService.GetCategoryRankings(eventId, phase)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, rankings)
	}
}

// @Description Runs finalist selection on the preliminary results of each bracket
// @Tags result
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {array} service.BracketFinalists
// @Router /events/{event_id}/results/finalists [get]
func (e *ResultController) getFinalistsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event, err := e.eventService.GetEventById(eventId, "Judges", "Contestants")
		if err != nil {
			c.JSON(404, gin.H{"error": "Event not found"})
			return
		}
		finalists, err := e.resultService.DetermineFinalists(event)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, finalists)
	}
}

// @Description Reports whether advancing to the final phase is blocked by an outstanding manual tie break
// @Tags result
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {object} map[string]bool
// @Router /events/{event_id}/results/unresolved-ties [get]
func (e *ResultController) getUnresolvedTiesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event, err := e.eventService.GetEventById(eventId, "Judges", "Contestants")
		if err != nil {
			c.JSON(404, gin.H{"error": "Event not found"})
			return
		}
		unresolved, err := e.resultService.HasUnresolvedTies(event)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"unresolved": unresolved})
	}
}
