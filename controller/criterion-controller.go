package controller

import (
	"strconv"

	"pageant/repository"
	"pageant/service"

	"github.com/gin-gonic/gin"
)

type CriterionController struct {
	criterionService *service.CriterionService
}

func NewCriterionController() *CriterionController {
	return &CriterionController{
		criterionService: service.NewCriterionService(),
	}
}

func setupCriterionController() []RouteInfo {
	e := NewCriterionController()
	basePath := "/events/:event_id/criteria"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getCriteriaHandler(), Authenticated: true},
		{Method: "POST", Path: "", HandlerFunc: e.createCriterionHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "PATCH", Path: "/:criterion_id", HandlerFunc: e.updateCriterionHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "DELETE", Path: "/:criterion_id", HandlerFunc: e.deleteCriterionHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type CriterionCreate struct {
	Name       string           `json:"name" binding:"required"`
	Identifier *string          `json:"identifier"`
	Phase      repository.Phase `json:"phase"`
	Weight     float64          `json:"weight"`
	AutoAssign bool             `json:"autoAssign"`
	ParentId   *int             `json:"parentId"`
}

// @Description Fetches the criterion tree of an event, optionally for one phase
// @Tags criterion
// @Produce json
// @Param event_id path int true "Event Id"
// @Param phase query string false "Phase filter"
// @Success 200 {array} repository.Criterion
// @Router /events/{event_id}/criteria [get]
func (e *CriterionController) getCriteriaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var phase *repository.Phase
		if raw := c.Query("phase"); raw != "" {
			p := repository.Phase(raw)
			phase = &p
		}
		criteria, err := e.criterionService.GetCriteriaForEvent(eventId, phase)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, criteria)
	}
}

// @Description Creates a criterion or sub-criterion
// @Tags criterion
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param criterion body CriterionCreate true "Criterion to create"
// @Success 201 {object} repository.Criterion
// @Router /events/{event_id}/criteria [post]
func (e *CriterionController) createCriterionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var criterionCreate CriterionCreate
		if err := c.BindJSON(&criterionCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		phase := criterionCreate.Phase
		if phase == "" {
			phase = repository.PhasePreliminary
		}
		criterion, err := e.criterionService.SaveCriterion(&repository.Criterion{
			EventId:    eventId,
			Name:       criterionCreate.Name,
			Identifier: criterionCreate.Identifier,
			Phase:      phase,
			Weight:     criterionCreate.Weight,
			AutoAssign: criterionCreate.AutoAssign,
			ParentId:   criterionCreate.ParentId,
		})
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, criterion)
	}
}

// @Description Updates a criterion
// @Tags criterion
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param criterion_id path int true "Criterion Id"
// @Success 200 {object} repository.Criterion
// @Router /events/{event_id}/criteria/{criterion_id} [patch]
func (e *CriterionController) updateCriterionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		criterionId, err := strconv.Atoi(c.Param("criterion_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		criterion, err := e.criterionService.GetCriterionById(criterionId)
		if err != nil {
			c.JSON(404, gin.H{"error": "Criterion not found"})
			return
		}
		if err := c.BindJSON(criterion); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		criterion.Id = criterionId
		criterion, err = e.criterionService.SaveCriterion(criterion)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, criterion)
	}
}

// @Description Removes a criterion, cascading sub-criteria and scores
// @Tags criterion
// @Param event_id path int true "Event Id"
// @Param criterion_id path int true "Criterion Id"
// @Success 204
// @Router /events/{event_id}/criteria/{criterion_id} [delete]
func (e *CriterionController) deleteCriterionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		criterionId, err := strconv.Atoi(c.Param("criterion_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.criterionService.DeleteCriterion(criterionId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(204, nil)
	}
}
