package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storehouse/internal/handlers"
	"storehouse/internal/middleware"
	"storehouse/internal/repositories"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	verifyHandler *handlers.VerifyHandler,
	userHandler *handlers.UserHandler,
	roleHandler *handlers.RoleHandler,
	categoryHandler *handlers.CategoryHandler,
	productHandler *handlers.ProductHandler,
	stockHandler *handlers.StockHandler,
	sessionRepo repositories.SessionRepository,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/signup", authHandler.Signup)
	r.POST("/verify-email", verifyHandler.VerifyEmail)
	r.POST("/resend-verification", authHandler.ResendVerification)
	r.POST("/login", authHandler.Login)

	// ---- protected
	r.Use(middleware.AuthMiddleware(sessionRepo))

	r.POST("/logout", authHandler.Logout)

	// USERS
	users := r.Group("/users")
	{
		users.GET("/me", userHandler.GetMe)
		users.GET("/me/logins", userHandler.GetMyLoginLogs)
		users.GET("/count", userHandler.GetUserCount)
		users.GET("/", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUserByID)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	// ROLES
	roles := r.Group("/roles")
	{
		roles.POST("/", roleHandler.CreateRole)
		roles.GET("/", roleHandler.ListRoles)
		roles.GET("/:id", roleHandler.GetRoleByID)
		roles.PUT("/:id", roleHandler.UpdateRole)
		roles.DELETE("/:id", roleHandler.DeleteRole)
	}

	// CATEGORIES
	categories := r.Group("/categories")
	{
		categories.POST("/", categoryHandler.Create)
		categories.GET("/", categoryHandler.List)
		categories.GET("/:id", categoryHandler.GetByID)
		categories.PUT("/:id", categoryHandler.Update)
		categories.DELETE("/:id", categoryHandler.Delete)
	}

	// PRODUCTS
	products := r.Group("/products")
	{
		products.POST("/", productHandler.Create)
		products.GET("/", productHandler.List)
		products.GET("/:id", productHandler.GetByID)
		products.PUT("/:id", productHandler.Update)
		products.DELETE("/:id", productHandler.Delete)
	}

	// STOCKS
	stocks := r.Group("/stocks")
	{
		stocks.POST("/", stockHandler.Create)
		stocks.GET("/", stockHandler.List)
		stocks.GET("/:id", stockHandler.GetByID)
		stocks.PUT("/:id", stockHandler.Update)
		stocks.DELETE("/:id", stockHandler.Delete)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/stocks/pdf", stockHandler.Report)
	}

	return r
}
