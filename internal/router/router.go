package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskhive/backend/api/handler"
)

type Handlers struct {
	Auth      *apiHandler.AuthHandler
	Employee  *apiHandler.EmployeeHandler
	Task      *apiHandler.TaskHandler
	Dashboard *apiHandler.DashboardHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/auth/register", handlers.Auth.Register)
	r.POST("/api/auth/login", handlers.Auth.Login)

	// Protected routes
	r.GET("/api/employees", authMiddleware(handlers.Employee.ListEmployees))
	r.POST("/api/employees", authMiddleware(handlers.Employee.CreateEmployee))

	r.GET("/api/tasks", authMiddleware(handlers.Task.ListTasks))
	r.POST("/api/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PATCH("/api/tasks/{id}", authMiddleware(handlers.Task.UpdateTaskStatus))

	r.GET("/api/dashboard/stats", authMiddleware(handlers.Dashboard.Stats))

	return r
}
