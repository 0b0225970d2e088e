package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/qrmenu-app/config"
	"github.com/yeremiapane/qrmenu-app/database"
	"github.com/yeremiapane/qrmenu-app/notify"
	"github.com/yeremiapane/qrmenu-app/router"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)
	utils.SetJWTSecret(cfg.JWTSecret, cfg.JWTTTL)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin: %v", err)
	}

	hub := notify.NewHub()

	tables := services.NewTableRegistry(db, hub)
	ledger := services.NewLedgerService(db, hub)
	ledger.Retention = cfg.SalesRetention
	ledger.Location = cfg.Location
	orders := services.NewOrderService(db, tables, ledger, hub)
	reservations := services.NewReservationService(db)
	reservations.Location = cfg.Location
	campaigns := services.NewCampaignService(db)
	prefs := services.NewPreferenceService(db)
	prefs.Sound = hub

	maintenance := services.NewMaintenance(ledger, campaigns)
	maintenance.Interval = cfg.MaintenanceInterval
	maintenance.Start()
	defer maintenance.Stop()

	r := router.SetupRouter(router.Dependencies{
		DB:             db,
		Hub:            hub,
		Tables:         tables,
		Orders:         orders,
		Reservations:   reservations,
		Ledger:         ledger,
		Prefs:          prefs,
		Campaigns:      campaigns,
		Location:       cfg.Location,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.InfoLogger.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server forced to shutdown: %v", err)
	}
}
