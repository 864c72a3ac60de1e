package router

import (
	"github.com/Maya170605/customs-backend/config"
	"github.com/Maya170605/customs-backend/internal/app/controller"
	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController        *controller.AuthController
	userController        *controller.UserController
	activityController    *controller.ActivityController
	declarationController *controller.DeclarationController
	paymentController     *controller.PaymentController
	vehicleController     *controller.VehicleController
	authMiddleware        *middleware.AuthMiddleware
	config                *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	activityController *controller.ActivityController,
	declarationController *controller.DeclarationController,
	paymentController *controller.PaymentController,
	vehicleController *controller.VehicleController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:        authController,
		userController:        userController,
		activityController:    activityController,
		declarationController: declarationController,
		paymentController:     paymentController,
		vehicleController:     vehicleController,
		authMiddleware:        authMiddleware,
		config:                cfg,
	}
}

// Setup wires the complete route table. Authenticate runs globally and never
// rejects; each route then states its own access rule, so the table below is
// the authorization matrix.
func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	router.Use(r.authMiddleware.Authenticate())

	requireAuth := r.authMiddleware.RequireAuth()
	adminOnly := r.authMiddleware.RequireRole(model.RoleAdmin)
	adminOrClient := r.authMiddleware.RequireRole(model.RoleAdmin, model.RoleClient)
	adminOrDriver := r.authMiddleware.RequireRole(model.RoleAdmin, model.RoleDriver)
	driverOnly := r.authMiddleware.RequireRole(model.RoleDriver)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Customs broker API is running",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/check-username/:username", r.authController.CheckUsername)
			auth.GET("/check-email/:email", r.authController.CheckEmail)
		}

		users := api.Group("/users")
		{
			users.GET("/check-username/:username", r.userController.CheckUsername)
			users.GET("/check-email/:email", r.userController.CheckEmail)

			users.POST("", requireAuth, r.userController.Create)
			users.GET("/me", requireAuth, r.userController.GetMe)
			users.GET("/:id", requireAuth, r.userController.GetByID)
			users.PUT("/:id", requireAuth, r.userController.Update)
			users.DELETE("/:id", requireAuth, r.userController.Delete)

			users.GET("", adminOnly, r.userController.GetAll)
			users.GET("/page", adminOnly, r.userController.GetPage)
			users.GET("/role/:role", adminOnly, r.userController.GetByRole)
		}

		activities := api.Group("/activities", requireAuth)
		{
			activities.POST("", r.activityController.Create)
			activities.POST("/user/:username", r.activityController.CreateForUsername)
			activities.POST("/user/id/:userId", r.activityController.CreateForUserID)
			activities.GET("", r.activityController.GetAll)
			activities.GET("/:id", r.activityController.GetByID)
			activities.GET("/user/:userId", r.activityController.GetByUser)
			activities.GET("/user/:userId/recent", r.activityController.GetRecentByUser)
			activities.GET("/user/:userId/page", r.activityController.GetPageByUser)
			activities.GET("/user/:userId/stats", r.activityController.StatsByUser)
			activities.PUT("/:id", r.activityController.Update)
			activities.DELETE("/:id", r.activityController.Delete)
			activities.DELETE("/user/:userId", r.activityController.DeleteByUser)
		}

		declarations := api.Group("/declarations")
		{
			declarations.POST("", adminOrClient, r.declarationController.Create)
			declarations.GET("", adminOnly, r.declarationController.GetAll)
			declarations.GET("/:id", requireAuth, r.declarationController.GetByID)
			declarations.GET("/client/:clientId", requireAuth, r.declarationController.GetByClient)
			declarations.GET("/client/:clientId/stats", adminOrClient, r.declarationController.StatsByClient)
			declarations.GET("/status/:status", requireAuth, r.declarationController.GetByStatus)
			declarations.PUT("/:id", adminOrClient, r.declarationController.Update)
			declarations.PATCH("/:id/status", requireAuth, r.declarationController.UpdateStatus)
			declarations.DELETE("/:id", adminOrClient, r.declarationController.Delete)
		}

		payments := api.Group("/payments")
		{
			payments.POST("", adminOrClient, r.paymentController.Create)
			payments.GET("", adminOnly, r.paymentController.GetAll)
			payments.GET("/:id", adminOrClient, r.paymentController.GetByID)
			payments.GET("/client/:clientId", adminOrClient, r.paymentController.GetByClient)
			payments.GET("/client/:clientId/stats", adminOrClient, r.paymentController.StatsByClient)
			payments.GET("/client/:clientId/overdue", adminOrClient, r.paymentController.GetOverdueByClient)
			payments.GET("/status/:status", adminOrClient, r.paymentController.GetByStatus)
			payments.GET("/declaration/:declarationId", adminOrClient, r.paymentController.GetByDeclaration)
			payments.PUT("/:id", adminOrClient, r.paymentController.Update)
			payments.PATCH("/:id/status", adminOrClient, r.paymentController.UpdateStatus)
			payments.POST("/:id/process", adminOrClient, r.paymentController.Process)
			payments.DELETE("/:id", adminOrClient, r.paymentController.Delete)
		}

		vehicles := api.Group("/vehicles")
		{
			vehicles.GET("/check-license-plate/:plate", r.vehicleController.CheckLicensePlate)

			vehicles.POST("", adminOrDriver, r.vehicleController.Create)
			vehicles.GET("", requireAuth, r.vehicleController.GetAll)
			vehicles.GET("/:id", requireAuth, r.vehicleController.GetByID)
			vehicles.GET("/available", adminOrDriver, r.vehicleController.GetAvailable)
			vehicles.GET("/rented", adminOnly, r.vehicleController.GetRented)
			vehicles.GET("/driver/:driverId/rented", adminOrDriver, r.vehicleController.GetRentedByDriver)
			vehicles.GET("/client/:clientId", adminOrClient, r.vehicleController.GetByClient)
			vehicles.GET("/client/:clientId/stats", adminOrClient, r.vehicleController.StatsByClient)
			vehicles.GET("/type/:vehicleType", adminOnly, r.vehicleController.GetByType)
			vehicles.GET("/license-plate/:plate", adminOrClient, r.vehicleController.GetByLicensePlate)
			vehicles.POST("/:id/rent", driverOnly, r.vehicleController.Rent)
			vehicles.POST("/:id/return", driverOnly, r.vehicleController.Return)
			vehicles.PUT("/:id", adminOrClient, r.vehicleController.Update)
			vehicles.DELETE("/:id", adminOrClient, r.vehicleController.Delete)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
