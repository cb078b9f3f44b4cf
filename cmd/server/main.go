package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gorm.io/gorm"

	"github.com/example/mataam/internal/cache"
	"github.com/example/mataam/internal/cart"
	"github.com/example/mataam/internal/config"
	"github.com/example/mataam/internal/database"
	"github.com/example/mataam/internal/events"
	"github.com/example/mataam/internal/handlers"
	"github.com/example/mataam/internal/logging"
	"github.com/example/mataam/internal/middleware"
	"github.com/example/mataam/internal/routes"
	"github.com/example/mataam/internal/rpc"
	"github.com/example/mataam/internal/services"
	"github.com/example/mataam/internal/store"
	"github.com/example/mataam/internal/utils"
)

const cartTTL = 7 * 24 * time.Hour

func main() {
	configPath := pflag.String("config", "", "path to a YAML config file")
	port := pflag.String("port", "", "listen port (overrides APP_PORT)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	if *port != "" {
		cfg.AppPort = *port
	}

	logging.Configure(cfg.LogLevel, cfg.LogFormat)
	log := logging.For("server")

	var db *gorm.DB
	if conn, err := database.Connect(cfg.DatabaseURL, cfg.LogLevel); err != nil {
		log.WithError(err).Warn("database unavailable, serving empty reads")
	} else {
		db = conn
	}
	st := store.New(db)

	ctx := context.Background()

	var kv cache.Cache = cache.NewMemory()
	if cfg.RedisURL != "" {
		r, err := cache.NewRedis(ctx, cfg.RedisURL, "mataam:")
		if err != nil {
			log.WithError(err).Warn("redis unavailable, using in-memory cache")
		} else {
			defer r.Close()
			kv = r
		}
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
		defer kp.Close()
		publisher = kp
	}

	telegram := services.NewTelegramService(
		cfg.TelegramBotToken,
		cfg.TelegramAdminChat,
		cfg.Currency,
		utils.ParseLocale(cfg.NotifyLocale),
	)

	limiter := middleware.NewRateLimiter(float64(cfg.RateLimitRPS), cfg.RateLimitBurst)

	app := fiber.New(fiber.Config{
		AppName:      "Mataam Backend",
		ErrorHandler: rpc.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	routes.Register(app, routes.Options{
		JWTSecret: cfg.JWTSecret,
		Users:     st,
		Limiter:   limiter,
		Handlers: handlers.Deps{
			Store:            st,
			Cache:            kv,
			CacheTTL:         cfg.CacheTTL,
			Orders:           services.NewOrderService(st, publisher, telegram),
			Coupons:          services.NewCouponService(st),
			Reservations:     services.NewReservationService(st, publisher, telegram),
			QR:               services.NewQRGenerator(cfg.PublicBaseURL),
			Carts:            cart.NewStore(kv, cartTTL),
			SettingsDefaults: cfg.SettingsDefaults,
		},
	})

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 5m", limiter.Cleanup); err != nil {
		log.WithError(err).Fatal("schedule limiter cleanup")
	}
	scheduler.Start()
	defer scheduler.Stop()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}()

	log.WithField("port", cfg.AppPort).Info("starting server")
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.WithError(err).Fatal("fiber.Listen error")
	}
}
