package controller

import (
	"strconv"

	"pageant/repository"
	"pageant/service"

	"github.com/gin-gonic/gin"
)

type ContestantController struct {
	contestantService *service.ContestantService
}

func NewContestantController() *ContestantController {
	return &ContestantController{
		contestantService: service.NewContestantService(),
	}
}

func setupContestantController() []RouteInfo {
	e := NewContestantController()
	basePath := "/events/:event_id/contestants"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getContestantsHandler(), Authenticated: true},
		{Method: "POST", Path: "", HandlerFunc: e.createContestantHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "PATCH", Path: "/:contestant_id", HandlerFunc: e.updateContestantHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "DELETE", Path: "/:contestant_id", HandlerFunc: e.deleteContestantHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type ContestantCreate struct {
	Number int             `json:"number" binding:"required"`
	Name   string          `json:"name" binding:"required"`
	Sex    *repository.Sex `json:"sex"`
}

// @Description Fetches the contestant pool of an event
// @Tags contestant
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {array} repository.Contestant
// @Router /events/{event_id}/contestants [get]
func (e *ContestantController) getContestantsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		contestants, err := e.contestantService.GetContestantsForEvent(eventId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, contestants)
	}
}

// @Description Adds a contestant to the pool
// @Tags contestant
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param contestant body ContestantCreate true "Contestant to create"
// @Success 201 {object} repository.Contestant
// @Router /events/{event_id}/contestants [post]
func (e *ContestantController) createContestantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var contestantCreate ContestantCreate
		if err := c.BindJSON(&contestantCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		contestant, err := e.contestantService.SaveContestant(&repository.Contestant{
			EventId: eventId,
			Number:  contestantCreate.Number,
			Name:    contestantCreate.Name,
			Sex:     contestantCreate.Sex,
		})
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, contestant)
	}
}

// @Description Updates a contestant
// @Tags contestant
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param contestant_id path int true "Contestant Id"
// @Success 200 {object} repository.Contestant
// @Router /events/{event_id}/contestants/{contestant_id} [patch]
func (e *ContestantController) updateContestantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		contestantId, err := strconv.Atoi(c.Param("contestant_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		contestant, err := e.contestantService.GetContestantById(contestantId)
		if err != nil {
			c.JSON(404, gin.H{"error": "Contestant not found"})
			return
		}
		if err := c.BindJSON(contestant); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		contestant.Id = contestantId
		contestant, err = e.contestantService.SaveContestant(contestant)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, contestant)
	}
}

// @Description Removes a contestant, cascading their scores
// @Tags contestant
// @Param event_id path int true "Event Id"
// @Param contestant_id path int true "Contestant Id"
// @Success 204
// @Router /events/{event_id}/contestants/{contestant_id} [delete]
func (e *ContestantController) deleteContestantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		contestantId, err := strconv.Atoi(c.Param("contestant_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.contestantService.DeleteContestant(contestantId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(204, nil)
	}
}
