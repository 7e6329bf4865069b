package main

import (
	"context"

	"rumahstay/internal/bookings/handler"
	"rumahstay/internal/bookings/repository"
	"rumahstay/internal/bookings/service"
	"rumahstay/internal/bookings/session"
	"rumahstay/internal/bookings/validator"
	"rumahstay/internal/pricing"
	"rumahstay/pkg/app"
	"rumahstay/pkg/client"
	"rumahstay/pkg/config"
	"rumahstay/pkg/kafka"
	kafka_config "rumahstay/pkg/kafka/config"
	"rumahstay/pkg/model"
)

const ServiceName = "bookings"

// propertyLoader adapts the properties HTTP client to the session service.
type propertyLoader struct {
	client *client.PropertyClient
}

func (l *propertyLoader) GetByID(ctx context.Context, id string) (*model.Property, error) {
	return l.client.GetByID(id)
}

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetPropertiesClient()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	producer, err := kafka.NewProducer(kafka_config.Load(), model.TopicBookingEvents, model.TopicBookingEventsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()

	store := session.NewStore(cfg.SessionTTL)
	defer store.Stop()

	sessionService, bookingService := initServices(cfg, store, producer)
	sessionHandler := handler.NewSessionHandler(sessionService, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, sessionHandler, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config, store *session.Store, producer *kafka.Producer) (service.SessionService, service.BookingService) {
	bookingValidator := validator.NewBookingValidator(cfg.Log, cfg.MaxStayNights)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	calculator := pricing.NewCalculator(cfg.ServiceFeePercent, cfg.CleaningFeeSen)

	sessionService := service.NewSessionService(
		store,
		bookingRepo,
		&propertyLoader{client: cfg.Client.Properties},
		bookingValidator,
		calculator,
		producer,
		cfg,
	)
	bookingService := service.NewBookingService(bookingRepo, cfg)

	cfg.Log.Info("Booking services initialized", "database", cfg.MongoDatabaseName)
	return sessionService, bookingService
}
