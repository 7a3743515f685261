// Package router wires HTTP routes to handlers and access-control
// middleware.  Staff roles (ADMIN, COORDINATOR) own the catalog and the
// timetable; everyone authenticated can file loans and read notifications;
// guests get the cached public browse surface.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sihul/sihul-backend/internal/handler"
	"github.com/sihul/sihul-backend/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers session endpoints.  Register, login and the
// refresh flows are open; /v1/me and /v1/auth/logout need a bearer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterCatalog registers the academic catalog CRUD.  Reads are open to
// any authenticated user; writes are staff only.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string) {
	read := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	read.GET("/faculties", h.ListFaculties)
	read.GET("/programs", h.ListPrograms)
	read.GET("/subjects", h.ListSubjects)
	read.GET("/groups", h.ListGroups)
	read.GET("/periods", h.ListPeriods)
	read.GET("/periods/active", h.ActivePeriod)

	staff := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "COORDINATOR"),
	)
	staff.POST("/faculties", h.CreateFaculty)
	staff.PUT("/faculties/:id", h.UpdateFaculty)
	staff.DELETE("/faculties/:id", h.DeleteFaculty)

	staff.POST("/programs", h.CreateProgram)
	staff.PUT("/programs/:id", h.UpdateProgram)
	staff.DELETE("/programs/:id", h.DeleteProgram)

	staff.POST("/subjects", h.CreateSubject)
	staff.PUT("/subjects/:id", h.UpdateSubject)
	staff.DELETE("/subjects/:id", h.DeleteSubject)

	staff.POST("/groups", h.CreateGroup)
	staff.PUT("/groups/:id", h.UpdateGroup)
	staff.DELETE("/groups/:id", h.DeleteGroup)

	staff.POST("/periods", h.CreatePeriod)
	staff.PUT("/periods/:id", h.UpdatePeriod)
	staff.DELETE("/periods/:id", h.DeletePeriod)
	staff.POST("/periods/:id/activate", h.ActivatePeriod)
}

// RegisterRooms registers room and resource management.
func RegisterRooms(e *echo.Echo, h *handler.RoomHandler, jwtSecret string) {
	read := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	read.GET("/rooms", h.ListRooms)
	read.GET("/rooms/:id", h.GetRoom)
	read.GET("/resources", h.ListResources)

	staff := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "COORDINATOR"),
	)
	staff.POST("/rooms", h.CreateRoom)
	staff.PUT("/rooms/:id", h.UpdateRoom)
	staff.DELETE("/rooms/:id", h.DeleteRoom)

	staff.POST("/resources", h.CreateResource)
	staff.PUT("/resources/:id", h.UpdateResource)
	staff.DELETE("/resources/:id", h.DeleteResource)
}

// RegisterSchedules registers the timetable itself.  Every write passes
// through the conflict validator inside the handler.
func RegisterSchedules(e *echo.Echo, h *handler.ScheduleHandler, jwtSecret string) {
	read := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	read.GET("/schedules", h.List)
	read.GET("/schedules/search", h.Search)
	read.GET("/schedules/:id", h.Get)
	read.GET("/fused-schedules", h.ListFused)
	read.GET("/teachers", h.ListTeachers)

	staff := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "COORDINATOR"),
	)
	staff.POST("/schedules", h.Create)
	staff.PUT("/schedules/:id", h.Update)
	staff.DELETE("/schedules/:id", h.Delete)
}

// RegisterLoans registers the room-loan workflow.  Anyone authenticated may
// request and list their own loans; deciding them is staff only.
func RegisterLoans(e *echo.Echo, h *handler.LoanHandler, jwtSecret string) {
	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.POST("/loans", h.Create)
	auth.GET("/loans/mine", h.ListMine)

	staff := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "COORDINATOR"),
	)
	staff.GET("/loans/pending", h.ListPending)
	staff.PUT("/loans/:id/approve", h.Approve)
	staff.PUT("/loans/:id/reject", h.Reject)
}

// RegisterNotifications registers per-user notification reads.
func RegisterNotifications(e *echo.Echo, h *handler.NotificationHandler, jwtSecret string) {
	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/notifications", h.List)
	auth.POST("/notifications/:id/read", h.MarkRead)
}

// RegisterPublic registers the guest browse surface.  cache may be nil.
func RegisterPublic(e *echo.Echo, h *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/public")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/timetable", h.SearchTimetable)
	g.GET("/schedules", h.GroupTimetable)
	g.GET("/rooms", h.ListRooms)
	g.GET("/faculties", h.ListFaculties)
	g.GET("/programs", h.ListPrograms)
}
