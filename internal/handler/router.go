package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/northside-portal/portal-api/internal/middleware"
	"github.com/northside-portal/portal-api/internal/service"
)

// Handlers bundles every endpoint group for route registration.
type Handlers struct {
	Auth       *AuthHandler
	Flex       *FlexHandler
	Hoofbeat   *HoofbeatHandler
	Events     *EventHandler
	Grades     *GradeHandler
	Attendance *AttendanceHandler
	Profile    *ProfileHandler
}

// RegisterRoutes wires the portal API route table under the given prefix.
// Every route except login requires a bearer token.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService) {
	api := r.Group(prefix)
	guard := middleware.JWT(auth)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/logout", guard, h.Auth.Logout)
	authGroup.POST("/register", guard, h.Auth.Register)

	flexes := api.Group("/flexes", guard)
	flexes.GET("", h.Flex.List)
	flexes.GET("/:flexId", h.Flex.Options)
	flexes.POST("/:flexId/:optionId", h.Flex.Register)

	hoofbeat := api.Group("/hoofbeat", guard)
	hoofbeat.GET("", h.Hoofbeat.FrontPage)
	hoofbeat.GET("/:slug", h.Hoofbeat.Article)

	events := api.Group("/events", guard)
	events.GET("", h.Events.List)
	events.GET("/:date", h.Events.ByDate)

	grades := api.Group("/grades", guard)
	grades.GET("", h.Grades.List)
	grades.GET("/export", h.Grades.Export)
	grades.GET("/:courseId", h.Grades.Detail)

	attendance := api.Group("/attendance", guard)
	attendance.GET("", h.Attendance.Overview)
	attendance.GET("/tardies/:tardyId", h.Attendance.TardyDetail)

	profile := api.Group("/profile", guard)
	profile.GET("", h.Profile.Card)
	profile.GET("/info", h.Profile.Info)
	profile.GET("/schedule", h.Profile.Schedule)
}
