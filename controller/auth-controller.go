package controller

import (
	"os"

	"pageant/auth"
	"pageant/config"
	"pageant/presence"
	"pageant/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	judgeService *service.JudgeService
	store        presence.Store
	hub          *presence.Hub
}

func NewAuthController(store presence.Store, hub *presence.Hub) *AuthController {
	return &AuthController{
		judgeService: service.NewJudgeService(),
		store:        store,
		hub:          hub,
	}
}

func setupAuthController(store presence.Store, hub *presence.Hub) []RouteInfo {
	e := NewAuthController(store, hub)
	basePath := "/auth"
	routes := []RouteInfo{
		{Method: "POST", Path: "/admin", HandlerFunc: e.adminLoginHandler()},
		{Method: "POST", Path: "/judge", HandlerFunc: e.judgeLoginHandler()},
		{Method: "POST", Path: "/logout", HandlerFunc: e.logoutHandler(), Authenticated: true},
		{Method: "GET", Path: "/me", HandlerFunc: e.whoAmIHandler(), Authenticated: true},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type LoginRequest struct {
	AccessCode string `json:"accessCode" binding:"required"`
}

// @Description Logs in as the event administrator
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Admin access code"
// @Success 200 {object} auth.Claims
// @Router /auth/admin [post]
func (e *AuthController) adminLoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var login LoginRequest
		if err := c.BindJSON(&login); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if login.AccessCode != config.Env().AdminAccessCode {
			c.JSON(401, gin.H{"error": "Invalid access code"})
			return
		}
		token, err := auth.CreateAdminToken()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.SetCookie("auth", token, 60*60*24, "/", os.Getenv("PUBLIC_DOMAIN"), false, true)
		c.JSON(200, gin.H{"permissions": []string{"admin"}})
	}
}

// @Description Logs in a judge by access code
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Judge access code"
// @Success 200 {object} JudgeResponse
// @Router /auth/judge [post]
func (e *AuthController) judgeLoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var login LoginRequest
		if err := c.BindJSON(&login); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		judge, err := e.judgeService.GetJudgeByAccessCode(login.AccessCode)
		if err != nil {
			c.JSON(401, gin.H{"error": "Invalid access code"})
			return
		}
		token, err := auth.CreateJudgeToken(judge)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.SetCookie("auth", token, 60*60*24, "/", os.Getenv("PUBLIC_DOMAIN"), false, true)
		c.JSON(200, toJudgeResponse(judge))
	}
}

// @Description Logs the caller out and drops their live presence
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (e *AuthController) logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		if claims != nil && claims.JudgeId != 0 {
			if e.store.ForceLogout(claims.JudgeId) {
				e.hub.Broadcast(presence.JudgesStatusEvent(e.store.Active()))
			}
		}
		c.SetCookie("auth", "", -1, "/", os.Getenv("PUBLIC_DOMAIN"), false, true)
		c.JSON(204, nil)
	}
}

// @Description Returns the caller's identity
// @Tags auth
// @Produce json
// @Success 200 {object} auth.Claims
// @Router /auth/me [get]
func (e *AuthController) whoAmIHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, getClaims(c))
	}
}
