package controller

import (
	"strconv"

	"pageant/service"

	"github.com/gin-gonic/gin"
)

type FinalistController struct {
	finalistService *service.FinalistService
}

func NewFinalistController() *FinalistController {
	return &FinalistController{
		finalistService: service.NewFinalistService(),
	}
}

func setupFinalistController() []RouteInfo {
	e := NewFinalistController()
	basePath := "/events/:event_id/finalist-selections"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getSelectionsHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "PUT", Path: "", HandlerFunc: e.saveSelectionsHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type FinalistSelectionUpdate struct {
	ContestantIds []int `json:"contestantIds" binding:"required"`
}

// @Description Fetches the admin's manual finalist picks
// @Tags finalist
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {array} repository.ManualFinalistSelection
// @Router /events/{event_id}/finalist-selections [get]
func (e *FinalistController) getSelectionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		selections, err := e.finalistService.GetSelectionsForEvent(eventId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, selections)
	}
}

// @Description Replaces the admin's manual finalist picks
// @Tags finalist
// @Accept json
// @Param event_id path int true "Event Id"
// @Param selection body FinalistSelectionUpdate true "Selected contestant ids"
// @Success 204
// @Router /events/{event_id}/finalist-selections [put]
func (e *FinalistController) saveSelectionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var update FinalistSelectionUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.finalistService.SaveSelections(eventId, update.ContestantIds); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(204, nil)
	}
}
