package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	listingapp "github.com/Psybah/housify-expo-sub000/application/listing"
	pointsapp "github.com/Psybah/housify-expo-sub000/application/points"
	unlockapp "github.com/Psybah/housify-expo-sub000/application/unlock"
	userapp "github.com/Psybah/housify-expo-sub000/application/user"
	"github.com/Psybah/housify-expo-sub000/cmd/config"
	redisclient "github.com/Psybah/housify-expo-sub000/cmd/redis"
	_ "github.com/Psybah/housify-expo-sub000/docs"
	listingRepo "github.com/Psybah/housify-expo-sub000/repository/listing"
	pointsRepo "github.com/Psybah/housify-expo-sub000/repository/points"
	redisRepo "github.com/Psybah/housify-expo-sub000/repository/redis"
	txRepo "github.com/Psybah/housify-expo-sub000/repository/tx"
	userRepo "github.com/Psybah/housify-expo-sub000/repository/user"
	"github.com/Psybah/housify-expo-sub000/thirdparty/payment"
	"github.com/Psybah/housify-expo-sub000/thirdparty/rabbitmq"
	"github.com/Psybah/housify-expo-sub000/transport"
	"github.com/Psybah/housify-expo-sub000/utils/logger"
)

// @title HOUSIFY API
// @version 1.0
// @description Housify points-gated listing API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Points event publisher/consumer; the server runs without them if
	// RabbitMQ is down, only notifications are lost.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("err connect rabbitmq publisher", zap.Error(err))
		publisher = nil
	} else {
		defer publisher.Close()
	}

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("err connect rabbitmq consumer", zap.Error(err))
	} else {
		defer consumer.Close()
		go func() {
			if err := consumer.Start(context.Background()); err != nil {
				logger.Error("points consumer stopped", zap.Error(err))
			}
		}()
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	ListingRepo := listingRepo.NewListingRepository(db)
	PointsRepo := pointsRepo.NewPointsRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	PaymentClient := payment.NewStubClient()
	UserApp := userapp.NewUserApp(cfg, TxRepo, UserRepo, PointsRepo, RedisRepo, publisher)
	PointsApp := pointsapp.NewPointsApp(cfg, TxRepo, UserRepo, PointsRepo, PaymentClient, publisher)
	ListingApp := listingapp.NewListingApp(cfg, TxRepo, ListingRepo, RedisRepo, PointsApp)
	UnlockApp := unlockapp.NewUnlockApp(TxRepo, UserRepo, ListingRepo, RedisRepo, PointsApp)

	httpTransport := transport.NewTransport(UserApp, ListingApp, PointsApp, UnlockApp, cfg.Server.InternalKey)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
