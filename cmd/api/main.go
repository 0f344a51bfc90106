package main

import (
	"github.com/julienschmidt/httprouter"

	bookinghandler "stayquest/internal/bookings/handler"
	bookingrepo "stayquest/internal/bookings/repository"
	bookingservice "stayquest/internal/bookings/service"
	bookingvalidator "stayquest/internal/bookings/validator"
	hotelhandler "stayquest/internal/hotels/handler"
	hotelrepo "stayquest/internal/hotels/repository"
	hotelservice "stayquest/internal/hotels/service"
	hotelvalidator "stayquest/internal/hotels/validator"
	"stayquest/internal/retrieval/client"
	retrievalhandler "stayquest/internal/retrieval/handler"
	retrievalrepo "stayquest/internal/retrieval/repository"
	retrievalservice "stayquest/internal/retrieval/service"
	"stayquest/pkg/app"
	"stayquest/pkg/auth"
	"stayquest/pkg/config"
	"stayquest/pkg/contracts"
	"stayquest/pkg/kafka"
	kafka_middleware "stayquest/pkg/kafka/middleware"
)

const ServiceName = "stayquest-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting StayQuest API")
	serverApp := app.NewApplication(cfg)
	serverApp.AddReadinessCheck("mongo", app.MongoPinger(cfg.Client.Mongo))
	if cfg.Client.Redis != nil {
		serverApp.AddReadinessCheck("redis", app.RedisPinger(cfg.Client.Redis))
	}

	guard := initGuard(cfg)
	events := initBookingEvents(cfg, serverApp)
	routes := initRoutes(cfg, guard, events)

	serverApp.SetApp(guard.Authenticate, routes)
	serverApp.Run()
}

func initGuard(cfg *config.Config) *auth.Guard {
	verifier, err := auth.NewSessionVerifier(cfg.ClerkJWTKey, cfg.ClerkAuthorizedParties)
	if err != nil {
		cfg.Log.Fatal("Invalid session verification key", "error", err)
	}
	authorizer := auth.NewAuthorizer(directory(cfg), cfg.AdminRole, cfg.Client.Redis, cfg.RoleCacheTTL, cfg.Log)
	return auth.NewGuard(verifier, authorizer, cfg.Log)
}

func directory(cfg *config.Config) *auth.ClerkDirectory {
	return auth.NewClerkDirectory(cfg.ClerkAPIURL, cfg.ClerkSecretKey, cfg.IdentityRPS, cfg.RequestTimeout)
}

// initBookingEvents returns a Kafka publisher when brokers are configured and
// a no-op otherwise.
func initBookingEvents(cfg *config.Config, serverApp *app.Application) kafka.BookingEvents {
	if cfg.Kafka == nil || !cfg.Kafka.Enabled() {
		cfg.Log.Info("Kafka not configured, booking events disabled")
		return kafka.NoopBookingEvents{}
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.Logging(cfg.Log))
	producer.Use(kafka_middleware.Metrics())
	serverApp.OnShutdown(producer)

	cfg.Log.Info("Booking events enabled", "topic", producer.Topic())
	return kafka.NewBookingPublisher(producer, cfg.Log)
}

func initRoutes(cfg *config.Config, guard *auth.Guard, events kafka.BookingEvents) contracts.Handler {
	hotelRepo := hotelrepo.NewMongoHotelRepository(cfg)
	hotelSvc := hotelservice.NewHotelService(hotelRepo, hotelvalidator.NewHotelValidator(), cfg)
	hotels := hotelhandler.NewHotelHandler(hotelSvc, guard, cfg.Log)

	bookingSvc := bookingservice.NewBookingService(
		bookingrepo.NewMongoBookingRepository(cfg),
		hotelRepo,
		directory(cfg),
		events,
		bookingvalidator.NewBookingValidator(),
		cfg,
	)
	bookings := bookinghandler.NewBookingHandler(bookingSvc, guard, cfg.Log)

	openai := client.NewOpenAIClient(cfg)
	retrievalSvc := retrievalservice.NewRetrievalService(
		hotelRepo,
		retrievalrepo.NewMongoVectorIndex(cfg),
		openai,
		openai,
		cfg,
	)
	retrieval := retrievalhandler.NewRetrievalHandler(retrievalSvc, guard, cfg.Log)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return contracts.RoutesFunc(func(router *httprouter.Router) {
		hotels.RegisterRoutes(router)
		bookings.RegisterRoutes(router)
		retrieval.RegisterRoutes(router, hotels)
	})
}
