package main

import (
	"fmt"
	"log"

	"wattbill/internal/config"
	"wattbill/internal/handler"
	"wattbill/internal/repository/postgres"
	"wattbill/internal/router"
	"wattbill/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	householdRepo := postgres.NewHouseholdRepo(db)
	usageRepo := postgres.NewUsageRepo(db)
	billRepo := postgres.NewBillRepo(db)
	tariffRepo := postgres.NewTariffRepo(db)

	// Initialize services
	tokenSvc := service.NewTokenService(cfg.JWT)
	tariffSvc := service.NewTariffService(tariffRepo, cfg.Tariff.Name)
	householdSvc := service.NewHouseholdService(householdRepo)
	usageSvc := service.NewUsageService(usageRepo, tariffSvc)
	billSvc := service.NewBillService(billRepo, usageSvc, tariffSvc)

	// Initialize handlers
	householdH := handler.NewHouseholdHandler(householdSvc)
	usageH := handler.NewUsageHandler(usageSvc, householdSvc)
	billH := handler.NewBillHandler(billSvc, householdSvc)
	tariffH := handler.NewTariffHandler(tariffSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(tokenSvc, cfg.CORS.AllowedOrigins, householdH, usageH, billH, tariffH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
