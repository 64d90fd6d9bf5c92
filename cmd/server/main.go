package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/nordx/jobcard-backend/internal/config"
	"github.com/nordx/jobcard-backend/internal/database"
	"github.com/nordx/jobcard-backend/internal/email"
	"github.com/nordx/jobcard-backend/internal/handler"
	"github.com/nordx/jobcard-backend/internal/pdf"
	"github.com/nordx/jobcard-backend/internal/queue"
	"github.com/nordx/jobcard-backend/internal/repository"
	"github.com/nordx/jobcard-backend/internal/router"
	"github.com/nordx/jobcard-backend/internal/service"
	"github.com/nordx/jobcard-backend/internal/service/queue_publisher"
	"github.com/nordx/jobcard-backend/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable; limiter degrades to no-op

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	companies := repository.NewCompanyRepo(db)
	clients := repository.NewClientRepo(db)
	tasks := repository.NewTaskRepo(db)
	cards := repository.NewJobCardRepo(db)
	failures := repository.NewFailureLogRepo(db)

	// Outbound mail: dry-run dispatcher when no API key is configured.
	var mailer email.Dispatcher = email.LogDispatcher{}
	if cfg.ResendAPIKey != "" {
		mailer = email.NewResendDispatcher(cfg.ResendAPIKey, cfg.EmailFrom)
	}

	renderer := pdf.NewRenderer(store)
	submissions := service.NewSubmissionService(cards, companies, store, failures,
		queue_publisher.PublishJobCardSubmitted)

	// Deferred render-and-mail pipeline.
	consumer := queue.NewConsumer(cards, companies, failures, renderer, mailer)
	go consumer.Start()

	// Handlers and routes.
	e := echo.New()
	e.HideBanner = true

	authH := handler.NewAuthHandler(cfg, users, tokens, mailer)
	jcH := handler.NewJobCardHandler(submissions, cards, store)
	clH := handler.NewClientHandler(clients)
	tH := handler.NewTaskHandler(tasks, clients)
	adminH := handler.NewAdminHandler(cfg, companies, users, store)

	router.RegisterRoutes(e, store)
	router.RegisterAuth(e, authH, config.LoadRateLimitConfig(), rdb, cfg.JWTSecret)
	router.RegisterJobCards(e, jcH, clH, tH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, jcH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
