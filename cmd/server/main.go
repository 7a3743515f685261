package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/sihul/sihul-backend/internal/config"
	"github.com/sihul/sihul-backend/internal/database"
	"github.com/sihul/sihul-backend/internal/handler"
	"github.com/sihul/sihul-backend/internal/middleware"
	"github.com/sihul/sihul-backend/internal/queue"
	"github.com/sihul/sihul-backend/internal/repository"
	"github.com/sihul/sihul-backend/internal/router"
	"github.com/sihul/sihul-backend/internal/schedule"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrations: %v", err)
	}
	if cfg.SeedData {
		if err := database.Seed(db, cfg.BcryptCost); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	faculties := repository.NewFacultyRepo(db)
	programs := repository.NewProgramRepo(db)
	subjects := repository.NewSubjectRepo(db)
	groups := repository.NewGroupRepo(db)
	periods := repository.NewPeriodRepo(db)
	rooms := repository.NewRoomRepo(db)
	resources := repository.NewResourceRepo(db)
	schedules := repository.NewScheduleRepo(db)
	fused := repository.NewFusedScheduleRepo(db)
	loans := repository.NewLoanRepo(db)
	notifications := repository.NewNotificationRepo(db)

	// Scheduling core
	validator := schedule.NewValidator(schedules, rooms)
	fusion := schedule.NewSynchronizer(schedules, fused)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users, tokens)
	catalogH := handler.NewCatalogHandler(faculties, programs, subjects, groups, periods)
	roomH := handler.NewRoomHandler(rooms, resources)
	scheduleH := handler.NewScheduleHandler(schedules, fused, rooms, groups, subjects, users, validator, fusion)
	loanH := handler.NewLoanHandler(loans, rooms, groups, subjects, schedules, validator, fusion)
	notifH := handler.NewNotificationHandler(notifications)
	publicH := handler.NewPublicHandler(schedules, rooms, faculties, programs)

	// Background consumer turns queue events into notifications.
	consumer := &queue.Consumer{Notifications: notifications, Users: users}
	go consumer.Start()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Redis-backed rate limiting and response caching degrade to no-ops
	// when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and response cache disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterCatalog(e, catalogH, cfg.JWTSecret)
	router.RegisterRooms(e, roomH, cfg.JWTSecret)
	router.RegisterSchedules(e, scheduleH, cfg.JWTSecret)
	router.RegisterLoans(e, loanH, cfg.JWTSecret)
	router.RegisterNotifications(e, notifH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
