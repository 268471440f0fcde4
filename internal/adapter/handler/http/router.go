package http

import (
	"time"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/port"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	tokenService port.TokenService,
	userHandler *UserHandler,
	orderHandler *OrderHandler,
	bannerHandler *BannerHandler,
	rateHandler *RateHandler,
	invoiceHandler *InvoiceHandler) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.POST("/auth/register", userHandler.RegisterUser)
		api.POST("/auth/login", userHandler.LoginUser)

		api.GET("/banners", bannerHandler.ListBanners)
		api.GET("/rates", rateHandler.ListRates)
		api.GET("/rates/convert", rateHandler.Convert)

		authed := api.Group("")
		{
			authed.Use(authCheck(tokenService))

			authed.GET("/profile", userHandler.Profile)

			authed.POST("/orders", orderHandler.CreateOrder)
			authed.GET("/orders", orderHandler.ListOwnOrders)
			authed.GET("/orders/:id", orderHandler.GetOrder)
			authed.PUT("/orders/:id", orderHandler.UpdateOrder)
			authed.GET("/orders/:id/history", orderHandler.OrderHistory)

			authed.GET("/invoices", invoiceHandler.ListOwnInvoices)
			authed.GET("/invoices/:id", invoiceHandler.GetInvoice)

			staff := authed.Group("/staff")
			{
				staff.Use(staffCheck())

				staff.GET("/orders", orderHandler.ListAllOrders)
				staff.GET("/orders/stats", orderHandler.OrderStats)
				staff.GET("/users", userHandler.ListUsers)

				staff.GET("/banners", bannerHandler.ListAllBanners)
				staff.POST("/banners", bannerHandler.CreateBanner)
				staff.PUT("/banners/:id", bannerHandler.UpdateBanner)
				staff.DELETE("/banners/:id", bannerHandler.DeleteBanner)

				staff.PUT("/rates/:code", rateHandler.UpsertRate)

				staff.POST("/invoices", invoiceHandler.CreateInvoice)
			}
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
