package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/choudharyanish1236-cloud/retail-task-manager/config"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/ai"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/handler"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/notify"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/service"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/store"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/ws"
	"github.com/choudharyanish1236-cloud/retail-task-manager/pkg/database"
	"github.com/choudharyanish1236-cloud/retail-task-manager/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found")
	}

	cfg := config.Load()
	logger.Setup(cfg.Logger.Level, cfg.Logger.Format)

	// Persistence: collection blobs in postgres behind the KV adapter.
	db := database.ConnectDB(cfg.Postgres)
	kv, err := store.NewGormKV(db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up KV store")
	}

	st := store.New(kv)
	if err := st.Open(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load collections")
	}

	// Realtime channel for dashboard clients.
	wsHub := ws.NewHub()
	go wsHub.Run()

	// External collaborators degrade to no-ops when unconfigured.
	var assistant ai.Assistant = ai.Disabled{}
	if cfg.OpenAI.APIKey != "" {
		assistant = ai.NewOpenAIAssistant(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.Shop.Type)
	}
	var messenger notify.Messenger = notify.Disabled{}
	if cfg.WhatsApp.GatewayURL != "" {
		messenger = notify.NewWhatsAppMessenger(cfg.WhatsApp.GatewayURL)
	}

	billingService := service.NewBillingService(st, assistant, wsHub)
	stockService := service.NewStockService(st, assistant, wsHub)
	reminderService := service.NewReminderService(st, messenger, wsHub)
	dashService := service.NewDashboardService(st)

	billingHandler := handler.NewBillingHandler(billingService)
	stockHandler := handler.NewStockHandler(stockService)
	customerHandler := handler.NewCustomerHandler(reminderService)
	dashHandler := handler.NewDashboardHandler(dashService)

	app := fiber.New(fiber.Config{
		AppName: cfg.Shop.Name + " RetailPro API",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// Dashboard
	api.Get("/dashboard/stats", dashHandler.GetStats)
	api.Get("/transactions", dashHandler.GetTransactions)

	// Billing and quotations
	api.Get("/invoices", billingHandler.GetInvoices)
	api.Post("/invoices", billingHandler.CreateInvoice)
	api.Get("/suggestions", billingHandler.GetSuggestions)

	// Inventory
	api.Get("/products", stockHandler.GetProducts)
	api.Post("/products", stockHandler.CreateProduct)
	api.Get("/products/low-stock", stockHandler.GetLowStock)
	api.Put("/products/:id/threshold", stockHandler.UpdateThreshold)
	api.Post("/stock/adjust", stockHandler.AdjustStock)
	api.Post("/stock/voice", stockHandler.ParseVoiceCommand)

	// Customers / pending payments
	api.Get("/customers/pending", customerHandler.GetPendingInvoices)
	api.Post("/invoices/:id/reminders", customerHandler.SendReminder)
	api.Put("/invoices/:id/paid", customerHandler.MarkPaid)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Panic().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
