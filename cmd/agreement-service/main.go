package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hazbase/kit/internal/app/background"
	"github.com/hazbase/kit/internal/app/setup"
	"github.com/hazbase/kit/internal/infrastructure/migrate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	deps, err := setup.InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}

	if deps.Config.EngineDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(deps.DB, deps.Config.EngineDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	useCases, err := setup.InitializeUseCases(deps)
	if err != nil {
		log.Fatalf("failed to init usecases: %v", err)
	}

	tasks := background.NewBackgroundTasks(
		useCases.OfferUsecase,
		useCases.DisputeUsecase,
		deps.Subscriber,
		time.Duration(deps.Config.Retention.FinalizedOfferHours)*time.Hour,
		deps.Config.Moderation.CommandTopic,
		deps.Config.Moderation.CommandGroup,
	)
	tasks.StartAll(context.Background())

	http.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf("%s:%s", deps.Config.MetricsServer.Host, deps.Config.MetricsServer.Port)
	log.Printf("agreement engine started, metrics on %s\n", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("failed to serve metrics: %v\n", err)
	}
}
