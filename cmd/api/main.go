package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"internship-portal/internal/config"
	"internship-portal/internal/domain"
	"internship-portal/internal/handler"
	"internship-portal/internal/middleware"
	"internship-portal/internal/repository"
	"internship-portal/internal/repository/mongostore"
	"internship-portal/internal/service"
	"internship-portal/internal/service/notification"
)

const shutdownTimeout = 20 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if redisClient, err = config.NewRedisClient(cfg); err != nil {
		logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var minioClient *minio.Client
	if minioClient, err = config.NewMinIOClient(cfg, logger.Named("minio")); err != nil {
		logger.Warn("minio unavailable, attachment upload will not work", zap.Error(err))
		minioClient = nil
	}

	repos := repository.NewRepositories(db)

	var mongoClient *mongo.Client
	if cfg.NotificationStore == config.StoreMongo {
		mongoClient, err = config.NewMongoClient(cfg)
		if err != nil {
			logger.Fatal("failed to connect to mongo", zap.Error(err))
		}
		mongoDB := mongoClient.Database(cfg.MongoDatabase)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := mongostore.EnsureIndexes(ctx, mongoDB); err != nil {
			logger.Warn("failed to ensure notification indexes", zap.Error(err))
		}
		cancel()

		repos.Notification = mongostore.NewNotificationRepository(mongoDB)
		logger.Info("notifications stored in mongo", zap.String("database", cfg.MongoDatabase))
	}

	services := service.NewServices(repos, redisClient, minioClient, cfg, logger)
	services.Outbox.Start()

	refresher, err := notification.StartRefresher(services.Directory, cfg.RoleRefreshSchedule, logger.Named("directory"), domain.RoleAdmin)
	if err != nil {
		logger.Warn("role refresher disabled", zap.Error(err))
	}

	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		BodyLimit:    12 << 20,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.RequestLogger(logger.Named("http")))

	handler.SetupRoutes(app, handlers, services.Auth)

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if refresher != nil {
		<-refresher.Stop().Done()
	}
	if err := services.Outbox.Close(ctx); err != nil {
		logger.Error("outbox did not drain", zap.Error(err))
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error("mongo disconnect failed", zap.Error(err))
		}
	}
}
