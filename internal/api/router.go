package api

import (
	"parking_billing/internal/api/handler"
	"parking_billing/internal/api/middleware"
	"parking_billing/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(as *service.AuthService, ps *service.ParkingService,
	authMw *middleware.AuthMiddleware, wsManager *handler.WebSocketManager) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Live occupancy feed, no auth required for read-only status.
	wsHandler := handler.NewWebSocketHandler(wsManager)
	r.GET("/ws", wsHandler.HandleWebSocket)

	authHandler := handler.NewAuthHandler(as)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	v1 := r.Group("/api/v1")
	v1.Use(authMw.Authenticate())
	{
		ownerH := handler.NewOwnerHandler(ps)
		ownerRoutes := v1.Group("/owner")
		{
			ownerRoutes.POST("", ownerH.InitOwner)
			ownerRoutes.GET("", ownerH.GetOwner)
			ownerRoutes.PUT("", ownerH.UpdateOwner)
		}

		slotH := handler.NewParkingSlotHandler(ps)
		slotRoutes := v1.Group("/parking-slots")
		{
			slotRoutes.POST("", slotH.AddParkingSlot)
			slotRoutes.GET("", slotH.GetAllSlots)
			slotRoutes.GET("/available", slotH.GetAvailableSlots)
			slotRoutes.GET("/:id", slotH.GetParkingSlotByID)
			slotRoutes.PUT("/:id", slotH.UpdateParkingSlot)
			slotRoutes.DELETE("/:id", slotH.DeleteParkingSlot)
		}

		allocationH := handler.NewAllocationHandler(ps)
		allocationRoutes := v1.Group("/allocations")
		{
			allocationRoutes.POST("", allocationH.ReserveSlot)
			allocationRoutes.GET("/:id", allocationH.GetAllocation)
			allocationRoutes.POST("/:id/pickup", allocationH.PickupCar)
		}

		valetH := handler.NewValetHandler(ps)
		v1.POST("/valet", valetH.RequestValetDelivery)
	}
	return r
}
