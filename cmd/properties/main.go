package main

import (
	"rumahstay/internal/properties/handler"
	"rumahstay/internal/properties/repository"
	"rumahstay/internal/properties/service"
	"rumahstay/internal/properties/validator"
	"rumahstay/pkg/app"
	"rumahstay/pkg/config"
)

const ServiceName = "properties"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Properties service")
	propertyService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewPropertyHandler(propertyService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.PropertyService {
	propertyValidator := validator.NewPropertyValidator(cfg.Log)
	propertyRepo := repository.NewMongoPropertyRepository(cfg)
	bookingReader := repository.NewMongoBookingReader(cfg)
	propertyService := service.NewPropertyService(
		propertyRepo,
		bookingReader,
		propertyValidator,
		cfg,
	)

	cfg.Log.Info("Property service initialized", "database", cfg.MongoDatabaseName)
	return propertyService
}
