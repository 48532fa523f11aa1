// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"gemini-users/internal/cache"
	"gemini-users/internal/database"
	"gemini-users/internal/genai"
	"gemini-users/internal/handler"
	geminihandler "gemini-users/internal/handler/gemini"
	"gemini-users/internal/handler/users"
	"gemini-users/internal/worker"
)

// Setup 註冊所有路由，依賴由呼叫端注入
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool, ai genai.Client) {
	e.GET("/", handler.RootHandler())
	e.GET("/health_check", handler.HealthHandler(db))

	// Users CRUD
	apiUsers := e.Group("/users")
	apiUsers.GET("", users.ListUsersHandler(db))
	apiUsers.POST("", users.CreateUserHandler(db))
	apiUsers.GET("/:user_id", users.GetUserHandler(db))
	apiUsers.PUT("/:user_id", users.UpdateUserHandler(db))
	apiUsers.DELETE("/:user_id", users.DeleteUserHandler(db))

	// Gemini 生成端點
	e.POST("/gemini", geminihandler.GenerateHandler(ai, rdb, wp))
	e.POST("/gemini/user/search", geminihandler.SearchGenerateHandler(ai, db))
}
