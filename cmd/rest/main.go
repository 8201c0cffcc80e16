package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"workflow-hub-be/internal/bootstrap"
	"workflow-hub-be/internal/config"
	"workflow-hub-be/internal/server"
	"workflow-hub-be/internal/tracer"
	"workflow-hub-be/pkg/database"
)

func main() {
	// 1. Load Configuration (also loads .env for the tracer settings)
	cfg := config.Load()

	// Tracer is a no-op unless OTEL_ENABLED=true
	shutdownTracer := tracer.InitTracer(tracer.OptionsFromEnv(bootstrap.Version))
	defer shutdownTracer(context.Background())

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	// 4. Start Background Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Println("Background: Starting Consumer Service...")
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}
	if container.NatsSubscriber != nil {
		if err := container.ConsumerService.SubscribeRemote(container.NatsSubscriber); err != nil {
			log.Printf("Background NATS Subscription Error: %v", err)
		}
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
