package main

import (
	"log"

	"whatsapp-bridge/internal/api"
	"whatsapp-bridge/internal/calls"
	"whatsapp-bridge/internal/config"
	"whatsapp-bridge/internal/database"
	"whatsapp-bridge/internal/messages"
	"whatsapp-bridge/internal/webhook"
	"whatsapp-bridge/internal/whatsapp"
	"whatsapp-bridge/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.Init(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	r := gin.Default()

	// CORS Middleware
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

	hub := ws.NewHub()
	go hub.Run()

	client := whatsapp.NewClient(cfg)
	callService := calls.NewService(calls.NewGormStore(db), client, cfg)
	messageService := messages.NewService(messages.NewGormStore(db), client, cfg)

	webhookHandler := webhook.NewHandler(cfg, callService, messageService, hub)
	callHandler := api.NewCallHandler(callService, hub)
	messageHandler := api.NewMessageHandler(messageService, hub)

	// Webhook Routes
	r.GET("/webhook", webhookHandler.VerifyWebhook)
	r.POST("/webhook", webhookHandler.HandleEvent)

	// Live event stream
	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request)
	})

	apiGroup := r.Group("/api")
	{
		// Calling Routes
		apiGroup.POST("/calls", callHandler.PlaceCall)
		apiGroup.POST("/calls/:id/end", callHandler.EndCall)
		apiGroup.GET("/calls", callHandler.GetHistory)
		apiGroup.GET("/calls/active", callHandler.GetActive)

		// Messaging Routes
		apiGroup.POST("/messages/send", messageHandler.SendMessage)
		apiGroup.GET("/messages", messageHandler.GetMessages)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
