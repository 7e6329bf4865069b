package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"rumahstay/internal/notifications"
	"rumahstay/pkg/config"
	"rumahstay/pkg/kafka"
	kafka_config "rumahstay/pkg/kafka/config"
	"rumahstay/pkg/model"
)

const (
	ServiceName   = "notifier"
	consumerGroup = "notifier"
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Notifier service")

	notifier := notifications.NewNotifier(&notifications.LogSender{Log: cfg.Log}, cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafka_config.Load(),
		model.TopicBookingEvents,
		consumerGroup,
		model.TopicBookingEventsDLQ,
		notifier.Handle,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	cfg.Log.Info("Consuming booking events", "topic", model.TopicBookingEvents, "group", consumerGroup)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped gracefully")
}
