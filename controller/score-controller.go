package controller

import (
	"strconv"

	"pageant/service"

	"github.com/gin-gonic/gin"
)

type ScoreController struct {
	scoreService *service.ScoreService
	eventService *service.EventService
}

func NewScoreController() *ScoreController {
	return &ScoreController{
		scoreService: service.NewScoreService(),
		eventService: service.NewEventService(),
	}
}

func setupScoreController() []RouteInfo {
	e := NewScoreController()
	basePath := "/events/:event_id/scores"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getScoresHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "GET", Path: "/mine", HandlerFunc: e.getOwnScoresHandler(), Authenticated: true, RequiredRoles: []string{"judge"}},
		{Method: "PUT", Path: "/mine", HandlerFunc: e.submitScoresHandler(), Authenticated: true, RequiredRoles: []string{"judge"}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Fetches every recorded score of the event
// @Tags score
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {array} repository.Score
// @Router /events/{event_id}/scores [get]
func (e *ScoreController) getScoresHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		scores, err := e.scoreService.GetScoresForEvent(eventId, nil)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, scores)
	}
}

// @Description Fetches the calling judge's score sheet for the current phase
// @Tags score
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {array} repository.Score
// @Router /events/{event_id}/scores/mine [get]
func (e *ScoreController) getOwnScoresHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		claims := getClaims(c)
		if claims == nil || claims.JudgeId == 0 {
			c.JSON(401, gin.H{"error": "Unauthenticated"})
			return
		}
		event, err := e.eventService.GetEventById(eventId)
		if err != nil {
			c.JSON(404, gin.H{"error": "Event not found"})
			return
		}
		scores, err := e.scoreService.GetScoresForJudge(claims.JudgeId, eventId, event.CurrentPhase)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, scores)
	}
}

// @Description Replaces the calling judge's score sheet for the current phase
// @Tags score
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param scores body []service.ScoreSubmission true "Score sheet"
// @Success 200 {array} repository.Score
// @Router /events/{event_id}/scores/mine [put]
func (e *ScoreController) submitScoresHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		claims := getClaims(c)
		if claims == nil || claims.JudgeId == 0 {
			c.JSON(401, gin.H{"error": "Unauthenticated"})
			return
		}
		var submissions []*service.ScoreSubmission
		if err := c.BindJSON(&submissions); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		scores, err := e.scoreService.SubmitScores(claims.JudgeId, eventId, submissions)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, scores)
	}
}
