package main

import (
	"context"
	"log"

	"notesync-be/internal/bootstrap"
	"notesync-be/internal/config"
	"notesync-be/internal/server"
	"notesync-be/internal/tracer"
	"notesync-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// The worker shares the process with the API; its context is the process
	// lifetime, so in-flight syncs are not tied to any request.
	go func() {
		log.Println("Background: Starting Sync Worker...")
		if err := container.SyncWorkerService.Consume(context.Background()); err != nil {
			log.Printf("Background Sync Worker Error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
