package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/hypermarketllc/commission-crm/internal/agent"
	"github.com/hypermarketllc/commission-crm/internal/auth"
	"github.com/hypermarketllc/commission-crm/internal/authz"
	"github.com/hypermarketllc/commission-crm/internal/carrier"
	"github.com/hypermarketllc/commission-crm/internal/commission"
	"github.com/hypermarketllc/commission-crm/internal/config"
	"github.com/hypermarketllc/commission-crm/internal/database"
	"github.com/hypermarketllc/commission-crm/internal/deal"
	"github.com/hypermarketllc/commission-crm/internal/integration"
	"github.com/hypermarketllc/commission-crm/internal/metrics"
	"github.com/hypermarketllc/commission-crm/internal/notification"
	"github.com/hypermarketllc/commission-crm/internal/position"
	"github.com/hypermarketllc/commission-crm/internal/product"
	"github.com/hypermarketllc/commission-crm/internal/settings"
	"github.com/hypermarketllc/commission-crm/internal/split"
	"github.com/hypermarketllc/commission-crm/internal/telegramchat"
)

func main() {
	config.Load()
	log := config.InitLogger()

	db, err := database.GetDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// AutoMigrate for all models
	if err := db.AutoMigrate(
		&position.Position{},
		&agent.Agent{},
		&carrier.Carrier{},
		&product.Product{},
		&split.CommissionSplit{},
		&deal.Deal{},
		&commission.Commission{},
		&notification.QueueEntry{},
		&integration.Integration{},
		&telegramchat.Chat{},
		&settings.Record{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	if err := position.SeedDefaults(db); err != nil {
		log.Fatalf("Failed to seed positions: %v", err)
	}

	// Repositories and services
	positionRepo := position.NewRepository(db)
	agentRepo := agent.NewRepository(db)
	carrierRepo := carrier.NewRepository(db)
	productRepo := product.NewRepository(db)
	splitRepo := split.NewRepository(db)
	dealRepo := deal.NewRepository(db)
	commissionRepo := commission.NewRepository(db)
	notifRepo := notification.NewRepository(db)
	integrationRepo := integration.NewRepository(db)
	chatRepo := telegramchat.NewRepository(db)
	settingsRepo := settings.NewRepository(db)

	commissionService := commission.NewService(commissionRepo, log)
	enqueuer := integration.NewEnqueuer(db, integrationRepo, notifRepo, chatRepo, log)
	authzService := authz.NewService()

	// Handlers
	positionHandler := position.NewHandler(positionRepo)
	agentHandler := agent.NewHandler(agentRepo)
	carrierHandler := carrier.NewHandler(carrierRepo)
	productHandler := product.NewHandler(productRepo)
	splitHandler := split.NewHandler(splitRepo)
	dealHandler := deal.NewHandler(dealRepo, commissionService, enqueuer, log)
	commissionHandler := commission.NewHandler(commissionService)
	integrationHandler := integration.NewHandler(integrationRepo)
	chatHandler := telegramchat.NewHandler(chatRepo)
	settingsHandler := settings.NewHandler(settingsRepo)

	// Queue processors. Discord spaces sends for webhook rate limits and
	// caps a pass at 10 entries; Telegram drains everything pending.
	metrics.Register()
	interval := config.PollInterval()
	discordProcessor := notification.NewProcessor(notifRepo, notification.NewDiscordTransport(), log, 10, 500*time.Millisecond, interval)
	telegramProcessor := notification.NewProcessor(notifRepo, notification.NewTelegramTransport(), log, 0, 0, interval)
	if err := discordProcessor.Start(); err != nil {
		log.Fatalf("Failed to start discord processor: %v", err)
	}
	if err := telegramProcessor.Start(); err != nil {
		log.Fatalf("Failed to start telegram processor: %v", err)
	}

	// Router
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/login", agentHandler.Login).Methods("POST")
	r.HandleFunc("/telegram/chats/register", chatHandler.Register).Methods("POST")
	r.HandleFunc("/telegram/chats/unregister", chatHandler.Unregister).Methods("POST")

	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.Middleware)

	protect := func(section, action string, fn http.HandlerFunc) http.Handler {
		return authz.Require(authzService, section, action)(fn)
	}

	// Deal routes
	api.Handle("/deals", protect(authz.SectionDeals, authz.ActionWrite, dealHandler.Create)).Methods("POST")
	api.Handle("/deals", protect(authz.SectionDeals, authz.ActionRead, dealHandler.List)).Methods("GET")
	api.Handle("/deals/{id}", protect(authz.SectionDeals, authz.ActionRead, dealHandler.Get)).Methods("GET")
	api.Handle("/deals/{id}", protect(authz.SectionDeals, authz.ActionWrite, dealHandler.Update)).Methods("PUT")
	api.Handle("/deals/{id}", protect(authz.SectionDeals, authz.ActionWrite, dealHandler.Delete)).Methods("DELETE")

	// Commission routes
	api.Handle("/deals/{id}/commissions", protect(authz.SectionCommissions, authz.ActionRead, commissionHandler.ListByDeal)).Methods("GET")
	api.Handle("/deals/{id}/commissions/calculate", protect(authz.SectionCommissions, authz.ActionWrite, commissionHandler.Calculate)).Methods("POST")
	api.Handle("/deals/{id}/commissions/chargeback", protect(authz.SectionCommissions, authz.ActionWrite, commissionHandler.Chargeback)).Methods("POST")
	api.Handle("/deals/{id}/commissions/reinstate", protect(authz.SectionCommissions, authz.ActionWrite, commissionHandler.Reinstate)).Methods("POST")
	api.Handle("/agents/{id}/commissions", protect(authz.SectionCommissions, authz.ActionRead, commissionHandler.ListByAgent)).Methods("GET")

	// Agent routes (Get/Update enforce self-or-admin in the handler)
	api.Handle("/agents", protect(authz.SectionAgents, authz.ActionWrite, agentHandler.Create)).Methods("POST")
	api.HandleFunc("/agents", agentHandler.List).Methods("GET")
	api.HandleFunc("/agents/{id}", agentHandler.Get).Methods("GET")
	api.HandleFunc("/agents/{id}", agentHandler.Update).Methods("PUT")
	api.Handle("/agents/{id}", protect(authz.SectionAgents, authz.ActionWrite, agentHandler.Delete)).Methods("DELETE")

	// Position routes
	api.Handle("/positions", protect(authz.SectionPositions, authz.ActionWrite, positionHandler.Create)).Methods("POST")
	api.Handle("/positions", protect(authz.SectionPositions, authz.ActionRead, positionHandler.List)).Methods("GET")
	api.Handle("/positions/{id}", protect(authz.SectionPositions, authz.ActionRead, positionHandler.Get)).Methods("GET")
	api.Handle("/positions/{id}", protect(authz.SectionPositions, authz.ActionWrite, positionHandler.Update)).Methods("PUT")
	api.Handle("/positions/{id}", protect(authz.SectionPositions, authz.ActionWrite, positionHandler.Delete)).Methods("DELETE")

	// Carrier and product routes
	api.Handle("/carriers", protect(authz.SectionCarriers, authz.ActionWrite, carrierHandler.Create)).Methods("POST")
	api.Handle("/carriers", protect(authz.SectionCarriers, authz.ActionRead, carrierHandler.List)).Methods("GET")
	api.Handle("/carriers/{id}", protect(authz.SectionCarriers, authz.ActionRead, carrierHandler.Get)).Methods("GET")
	api.Handle("/carriers/{id}", protect(authz.SectionCarriers, authz.ActionWrite, carrierHandler.Update)).Methods("PUT")
	api.Handle("/carriers/{id}", protect(authz.SectionCarriers, authz.ActionWrite, carrierHandler.Delete)).Methods("DELETE")
	api.Handle("/carriers/{id}/products", protect(authz.SectionProducts, authz.ActionWrite, productHandler.Create)).Methods("POST")
	api.Handle("/carriers/{id}/products", protect(authz.SectionProducts, authz.ActionRead, productHandler.ListByCarrier)).Methods("GET")
	api.Handle("/products/{id}", protect(authz.SectionProducts, authz.ActionRead, productHandler.Get)).Methods("GET")
	api.Handle("/products/{id}", protect(authz.SectionProducts, authz.ActionWrite, productHandler.Update)).Methods("PUT")
	api.Handle("/products/{id}", protect(authz.SectionProducts, authz.ActionWrite, productHandler.Delete)).Methods("DELETE")

	// Split routes
	api.Handle("/products/{id}/splits", protect(authz.SectionSplits, authz.ActionWrite, splitHandler.Create)).Methods("POST")
	api.Handle("/products/{id}/splits", protect(authz.SectionSplits, authz.ActionRead, splitHandler.ListByProduct)).Methods("GET")
	api.Handle("/splits/{sid}", protect(authz.SectionSplits, authz.ActionWrite, splitHandler.Update)).Methods("PUT")
	api.Handle("/splits/{sid}", protect(authz.SectionSplits, authz.ActionWrite, splitHandler.Delete)).Methods("DELETE")

	// Integration routes
	api.Handle("/integrations", protect(authz.SectionIntegrations, authz.ActionWrite, integrationHandler.Create)).Methods("POST")
	api.Handle("/integrations", protect(authz.SectionIntegrations, authz.ActionRead, integrationHandler.List)).Methods("GET")
	api.Handle("/integrations/{id}", protect(authz.SectionIntegrations, authz.ActionRead, integrationHandler.Get)).Methods("GET")
	api.Handle("/integrations/{id}", protect(authz.SectionIntegrations, authz.ActionWrite, integrationHandler.Update)).Methods("PUT")
	api.Handle("/integrations/{id}", protect(authz.SectionIntegrations, authz.ActionWrite, integrationHandler.Delete)).Methods("DELETE")

	// Settings routes
	api.Handle("/settings", protect(authz.SectionSettings, authz.ActionRead, settingsHandler.Get)).Methods("GET")
	api.Handle("/settings", protect(authz.SectionSettings, authz.ActionWrite, settingsHandler.Update)).Methods("PUT")

	handler := cors.AllowAll().Handler(r)

	addr := config.HTTPAddr()
	log.Infof("Server listening on %s", addr)
	go func() {
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	discordProcessor.Stop()
	telegramProcessor.Stop()
	log.Info("Shut down")
}
