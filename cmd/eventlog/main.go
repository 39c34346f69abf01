// eventlog tails the operations event feed and prints each domain
// event through the structured logger. Useful during an event to watch
// sales, reversals, check-ins and low-stock warnings live.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"eventops-service/config"
	"eventops-service/internal/broker"
	"eventops-service/internal/util"
	"eventops-service/internal/worker"
)

func main() {
	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents, cfg.Kafka.ConsumerGroup)
	eventWorker := worker.NewEventLogWorker(consumer, util.GetLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := eventWorker.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Event log worker error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	eventWorker.Stop()
	log.Println("Event log exited")
}
