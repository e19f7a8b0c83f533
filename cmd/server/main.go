package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/madjo-travel/voyage-reservation/internal/config"
	"github.com/madjo-travel/voyage-reservation/internal/database"
	"github.com/madjo-travel/voyage-reservation/internal/handler"
	"github.com/madjo-travel/voyage-reservation/internal/middleware"
	"github.com/madjo-travel/voyage-reservation/internal/queue"
	"github.com/madjo-travel/voyage-reservation/internal/repository"
	"github.com/madjo-travel/voyage-reservation/internal/router"
	queue_publisher "github.com/madjo-travel/voyage-reservation/internal/service"
)

func main() {
	// Best effort: a missing .env is fine in containerized deployments
	// where the environment is injected directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	clientRepo := repository.NewClientRepo(db)
	agentRepo := repository.NewAgentRepo(db)
	voyageRepo := repository.NewVoyageRepo(db)
	ticketRepo := repository.NewTicketTypeRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	reservationHandler := handler.NewReservationHandler(reservationRepo, clientRepo, voyageRepo, ticketRepo)
	reservationHandler.Publish = queue_publisher.PublishReservationConfirmed

	handlers := router.Handlers{
		Client:      handler.NewClientHandler(clientRepo, cfg.BcryptCost),
		Agent:       handler.NewAgentHandler(agentRepo, cfg.BcryptCost),
		Voyage:      handler.NewVoyageHandler(voyageRepo),
		TicketType:  handler.NewTicketTypeHandler(ticketRepo),
		Reservation: reservationHandler,
		Payment:     handler.NewPaymentHandler(paymentRepo, reservationRepo, agentRepo),
	}

	// The consumer reconnects on its own; a hard failure here should not
	// take the API down.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)

	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient())
	router.Register(e, handlers, rl)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
