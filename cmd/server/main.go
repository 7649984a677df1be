package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"dekorhouse/internal/auth"
	"dekorhouse/internal/cart"
	"dekorhouse/internal/config"
	"dekorhouse/internal/infrastructure/logger"
	"dekorhouse/internal/infrastructure/mysql"
	"dekorhouse/internal/infrastructure/redis"
	"dekorhouse/internal/infrastructure/telegram"
	"dekorhouse/internal/order"
	"dekorhouse/internal/order/usecase"
	"dekorhouse/internal/pricing"
	"dekorhouse/internal/product"
	"dekorhouse/internal/server"
)

func main() {
	cfg, err := config.Load("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	// initData signatures cannot be checked without the bot token
	if cfg.Telegram.BotToken == "" {
		zapLogger.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	rdb, err := redis.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		zapLogger.Fatal("connecting to redis", zap.Error(err))
	}
	defer rdb.Close()
	zapLogger.Info("redis connected")

	var notifier usecase.Notifier = telegram.NopNotifier{}
	if cfg.Telegram.AdminChatID != 0 {
		notifier = telegram.NewNotifier(cfg.Telegram.APIBaseURL, cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)
	} else {
		zapLogger.Warn("TELEGRAM_ADMIN_CHAT_ID not set, order notifications disabled")
	}

	fees := pricing.FeePolicy{
		FreeThreshold: cfg.Checkout.FreeDeliveryThreshold,
		FlatFee:       cfg.Checkout.DeliveryFee,
	}

	productCtrl := product.NewModule(db, zapLogger)
	cartCtrl := cart.NewModule(db, fees, zapLogger)
	orderModule := order.NewModule(
		db,
		cfg.Checkout,
		fees,
		redis.NewIdempotencyStore(rdb, cfg.Checkout.IdempotencyTTL),
		notifier,
		zapLogger,
	)

	authMW := auth.NewMiddleware(cfg.Telegram.BotToken, cfg.Telegram.InitDataTTL, cfg.Telegram.AdminIDs, zapLogger)
	router := server.NewRouter(authMW, productCtrl, cartCtrl, orderModule.Controller, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)
	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("server error", zap.Error(err))
	}

	// let in-flight order notifications finish before exiting
	orderModule.Checkout.Wait()
	zapLogger.Info("server stopped gracefully")
}
