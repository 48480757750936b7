package main

import (
	"fmt"
	"log"

	"transactions-api/internal/config"
	"transactions-api/internal/database"
	"transactions-api/internal/events"
	kafkaevents "transactions-api/internal/events/kafka"
	"transactions-api/internal/ledger"
	"transactions-api/internal/router"
	"transactions-api/internal/session"
	"transactions-api/internal/storage/gormstore"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// event stream is optional; default is the noop publisher
	var pub events.Publisher = events.Noop{}
	if cfg.Events.Enabled {
		kp := kafkaevents.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		defer kp.Close()
		pub = kp
	}

	ldg := ledger.New(gormstore.New(db), pub)
	sess := session.NewProvider(cfg.Session)

	// setup router
	r := router.SetupRouter(cfg, ldg, sess)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
