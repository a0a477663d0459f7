// The notifier worker consumes the domain events published by the client,
// writes notification records back into the document store and queues email
// and SMS delivery jobs for the queue workers below.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Gide-1400/fast-shipment-world/internal/bridge"
	"github.com/Gide-1400/fast-shipment-world/internal/i18n"
	"github.com/Gide-1400/fast-shipment-world/internal/remote"
	"github.com/Gide-1400/fast-shipment-world/shared/config"
	"github.com/Gide-1400/fast-shipment-world/shared/kafka"
	"github.com/Gide-1400/fast-shipment-world/shared/rabbitmq"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := newClient(ctx, cfg, log)
	if err != nil {
		log.Fatal("backend unavailable", zap.String("backend", cfg.Backend), zap.Error(err))
	}

	rabbitClient, err := rabbitmq.NewClient(cfg.RabbitURL())
	if err != nil {
		log.Fatal("rabbitmq unavailable", zap.Error(err))
	}
	// Closed explicitly at the end of the shutdown sequence, after the
	// workers drain.
	for _, queue := range []string{bridge.EmailQueue, bridge.SMSQueue} {
		if err := rabbitClient.CreateQueue(queue); err != nil {
			log.Fatal("queue declare failed", zap.String("queue", queue), zap.Error(err))
		}
	}

	if cfg.KafkaBroker == "" {
		log.Fatal("KAFKA_BROKER is required; the notifier has nothing to consume without it")
	}
	consumer := kafka.NewConsumer([]string{cfg.KafkaBroker}, cfg.KafkaTopic, "notifier-group", log)

	translator := i18n.New(cfg.Language)
	br := bridge.New(client, rabbitClient, translator, log)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("🎧 event bridge listening", zap.String("topic", cfg.KafkaTopic))
		consumer.Start(ctx, br.Handle)
	}()

	wg.Add(1)
	go deliveryWorker(ctx, rabbitClient, bridge.EmailQueue, "📧", &wg, log)
	wg.Add(1)
	go deliveryWorker(ctx, rabbitClient, bridge.SMSQueue, "📱", &wg, log)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Info("🛑 shutting down", zap.String("signal", sig.String()))

	// Stop accepting work first, drain the workers, then drop connections.
	cancel()
	wg.Wait()
	if err := rabbitClient.Close(); err != nil {
		log.Warn("rabbitmq close failed", zap.Error(err))
	}
	if err := consumer.Close(); err != nil {
		log.Warn("consumer close failed", zap.Error(err))
	}
	log.Info("shutdown complete")
}

func newClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (remote.Client, error) {
	switch cfg.Backend {
	case "mongo":
		return remote.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, log)
	case "postgres":
		pg, err := remote.NewPostgresClient(cfg.DBURL(), log)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return pg, nil
	default:
		return remote.NewMemoryClient(), nil
	}
}

// deliveryWorker drains one queue. Delivery is simulated; the job payload is
// logged, acked and forgotten. Wiring a real mail or SMS provider replaces
// the sleep.
func deliveryWorker(ctx context.Context, client *rabbitmq.Client, queue, icon string, wg *sync.WaitGroup, log *zap.Logger) {
	defer wg.Done()

	msgs, err := client.Consume(queue)
	if err != nil {
		log.Error("consume failed", zap.String("queue", queue), zap.Error(err))
		return
	}
	for {
		select {
		case <-ctx.Done():
			log.Info("worker stopping", zap.String("queue", queue))
			return
		case d, ok := <-msgs:
			if !ok {
				return
			}
			log.Info(icon+" delivering job",
				zap.String("queue", queue), zap.ByteString("body", d.Body))
			time.Sleep(200 * time.Millisecond)
			if err := d.Ack(false); err != nil {
				log.Warn("ack failed", zap.String("queue", queue), zap.Error(err))
			}
		}
	}
}
