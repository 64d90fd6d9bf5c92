package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nordx/jobcard-backend/internal/handler"
)

// RegisterJobCards registers the submission pipeline and the read side
// of job cards, plus the client and task registries, under /v1.
func RegisterJobCards(e *echo.Echo, jc *handler.JobCardHandler, cl *handler.ClientHandler, t *handler.TaskHandler, jwtSecret string) {
	g := protectedGroup(e, jwtSecret)

	g.POST("/jobcards", jc.Submit)
	g.GET("/jobcards", jc.List)
	g.GET("/jobcards/:id", jc.Get)
	g.GET("/jobcards/:id/pdf", jc.PDF)

	g.POST("/clients", cl.Create)
	g.GET("/clients", cl.List)
	g.GET("/clients/:id", cl.Get)
	g.GET("/clients/:id/tasks", t.ListByClient)
	g.POST("/tasks", t.Create)
}
