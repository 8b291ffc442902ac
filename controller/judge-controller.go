package controller

import (
	"strconv"

	"pageant/presence"
	"pageant/repository"
	"pageant/service"
	"pageant/utils"

	"github.com/gin-gonic/gin"
)

type JudgeController struct {
	judgeService *service.JudgeService
	store        presence.Store
	hub          *presence.Hub
}

func NewJudgeController(store presence.Store, hub *presence.Hub) *JudgeController {
	return &JudgeController{
		judgeService: service.NewJudgeService(),
		store:        store,
		hub:          hub,
	}
}

func setupJudgeController(store presence.Store, hub *presence.Hub) []RouteInfo {
	e := NewJudgeController(store, hub)
	basePath := "/events/:event_id/judges"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getJudgesHandler(), Authenticated: true},
		{Method: "POST", Path: "", HandlerFunc: e.createJudgeHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "PATCH", Path: "/:judge_id", HandlerFunc: e.updateJudgeHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "DELETE", Path: "/:judge_id", HandlerFunc: e.deleteJudgeHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "PUT", Path: "/:judge_id/lock", HandlerFunc: e.setLockHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
		{Method: "POST", Path: "/:judge_id/force-logout", HandlerFunc: e.forceLogoutHandler(), Authenticated: true, RequiredRoles: []string{"admin"}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// JudgeResponse is a judge without the access code.
type JudgeResponse struct {
	Id                int    `json:"id"`
	EventId           int    `json:"eventId"`
	Number            int    `json:"number"`
	Name              string `json:"name"`
	LockedPreliminary bool   `json:"lockedPreliminary"`
	LockedFinal       bool   `json:"lockedFinal"`
}

func toJudgeResponse(judge *repository.Judge) JudgeResponse {
	return JudgeResponse{
		Id:                judge.Id,
		EventId:           judge.EventId,
		Number:            judge.Number,
		Name:              judge.Name,
		LockedPreliminary: judge.LockedPreliminary,
		LockedFinal:       judge.LockedFinal,
	}
}

func redactAccessCode(judge *repository.Judge) *repository.Judge {
	redacted := *judge
	redacted.AccessCode = ""
	return &redacted
}

type JudgeCreate struct {
	Number     int    `json:"number" binding:"required"`
	Name       string `json:"name" binding:"required"`
	AccessCode string `json:"accessCode" binding:"required"`
}

// @Description Fetches the judge panel of an event
// @Tags judge
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {array} JudgeResponse
// @Router /events/{event_id}/judges [get]
func (e *JudgeController) getJudgesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		judges, err := e.judgeService.GetJudgesForEvent(eventId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(judges, toJudgeResponse))
	}
}

// @Description Adds a judge to the panel
// @Tags judge
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param judge body JudgeCreate true "Judge to create"
// @Success 201 {object} JudgeResponse
// @Router /events/{event_id}/judges [post]
func (e *JudgeController) createJudgeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var judgeCreate JudgeCreate
		if err := c.BindJSON(&judgeCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		judge, err := e.judgeService.SaveJudge(&repository.Judge{
			EventId:    eventId,
			Number:     judgeCreate.Number,
			Name:       judgeCreate.Name,
			AccessCode: judgeCreate.AccessCode,
		})
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toJudgeResponse(judge))
	}
}

// @Description Updates a judge
// @Tags judge
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param judge_id path int true "Judge Id"
// @Success 200 {object} JudgeResponse
// @Router /events/{event_id}/judges/{judge_id} [patch]
func (e *JudgeController) updateJudgeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		judgeId, err := strconv.Atoi(c.Param("judge_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		judge, err := e.judgeService.GetJudgeById(judgeId)
		if err != nil {
			c.JSON(404, gin.H{"error": "Judge not found"})
			return
		}
		if err := c.BindJSON(judge); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		judge.Id = judgeId
		judge, err = e.judgeService.SaveJudge(judge)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, toJudgeResponse(judge))
	}
}

// @Description Removes a judge from the panel
// @Tags judge
// @Param event_id path int true "Event Id"
// @Param judge_id path int true "Judge Id"
// @Success 204
// @Router /events/{event_id}/judges/{judge_id} [delete]
func (e *JudgeController) deleteJudgeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		judgeId, err := strconv.Atoi(c.Param("judge_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.judgeService.DeleteJudge(judgeId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		if e.store.ForceLogout(judgeId) {
			e.hub.Broadcast(presence.JudgesStatusEvent(e.store.Active()))
		}
		c.JSON(204, nil)
	}
}

type LockUpdate struct {
	Phase  repository.Phase `json:"phase" binding:"required"`
	Locked *bool            `json:"locked" binding:"required"`
}

// @Description Locks or unlocks a judge's score sheet for one phase
// @Tags judge
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param judge_id path int true "Judge Id"
// @Param lock body LockUpdate true "Lock state"
// @Success 200 {object} JudgeResponse
// @Router /events/{event_id}/judges/{judge_id}/lock [put]
func (e *JudgeController) setLockHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		judgeId, err := strconv.Atoi(c.Param("judge_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var update LockUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		judge, err := e.judgeService.SetLock(judgeId, update.Phase, *update.Locked)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		e.hub.BroadcastRoom(eventId, presence.JudgeLockChangedEvent(judgeId, update.Phase, *update.Locked))
		c.JSON(200, toJudgeResponse(judge))
	}
}

// @Description Disconnects a judge's live session
// @Tags judge
// @Param event_id path int true "Event Id"
// @Param judge_id path int true "Judge Id"
// @Success 204
// @Router /events/{event_id}/judges/{judge_id}/force-logout [post]
func (e *JudgeController) forceLogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		judgeId, err := strconv.Atoi(c.Param("judge_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		e.store.ForceLogout(judgeId)
		e.hub.Broadcast(presence.JudgesStatusEvent(e.store.Active()))
		c.JSON(204, nil)
	}
}
