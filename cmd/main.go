package main

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"engagement-service/api"
	"engagement-service/config"
	"engagement-service/events"
	"engagement-service/metrics"
	"engagement-service/store"
	"engagement-service/worker"
)

func main() {
	cfg := config.Load()

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	if err := client.Ping(context.Background(), nil); err != nil {
		log.Fatal("MongoDB ping error:", err)
	}
	log.Println("Connected to MongoDB successfully")

	db := client.Database(cfg.MongoDatabase)

	if err := store.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatal("Index setup error:", err)
	}

	metrics.Init("engagement-service", "1.0", cfg.Environment)

	publisher, err := events.NewPublisher(cfg.NATSUrl)
	if err != nil {
		log.Printf("[WARN] NATS unavailable, engagement events disabled: %v", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	reconciler := worker.NewReconciler(store.NewArticleStore(db), cfg.ReconcileInterval)
	go reconciler.Start(context.Background())

	log.Println("Starting the engagement service")
	api.StartServer(cfg, db, publisher)
}
