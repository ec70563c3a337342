package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smart-upi.backend/internal/interfaces/http/handlers"
	"smart-upi.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	orderHandler   *handlers.OrderHandler
	attemptHandler *handlers.AttemptHandler
	networkHandler *handlers.NetworkHandler
	adminHandler   *handlers.AdminHandler
	merchantAuth   gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
		}

		// Customer-facing order routes (public)
		orders := v1.Group("/orders")
		{
			orders.POST("", middleware.IdempotencyMiddleware(), d.orderHandler.CreateOrder)
			orders.GET("", d.orderHandler.ListOrders)
			orders.GET("/:id", d.orderHandler.GetOrder)
			orders.GET("/:id/attempts", d.orderHandler.ListOrderAttempts)
		}

		// Customer-facing attempt routes
		attempts := v1.Group("/attempts")
		{
			attempts.POST("", middleware.IdempotencyMiddleware(), d.attemptHandler.CreateAttempt)
			attempts.GET("", d.attemptHandler.ListAttempts)
			attempts.POST("/:id/reconcile", d.merchantAuth, d.attemptHandler.ReconcileAttempt)
		}

		// Network simulation routes
		network := v1.Group("/network")
		{
			network.GET("/status", d.networkHandler.GetStatus)
			network.POST("/status", d.merchantAuth, d.networkHandler.SetStatus)
			network.POST("/sync", d.merchantAuth, d.networkHandler.Sync)
			network.GET("/queue", d.merchantAuth, d.networkHandler.GetQueue)
		}

		// Admin routes (merchant only)
		admin := v1.Group("/admin")
		admin.Use(d.merchantAuth)
		{
			admin.GET("/export", d.adminHandler.Export)
			admin.POST("/clear", d.adminHandler.ClearAllData)
		}
	}
}
