package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AndersondSilva/wow-server-dashboard/internal/command"
	"github.com/AndersondSilva/wow-server-dashboard/internal/config"
	"github.com/AndersondSilva/wow-server-dashboard/internal/events"
	"github.com/AndersondSilva/wow-server-dashboard/internal/googleauth"
	"github.com/AndersondSilva/wow-server-dashboard/internal/handler"
	"github.com/AndersondSilva/wow-server-dashboard/internal/mail"
	"github.com/AndersondSilva/wow-server-dashboard/internal/middleware"
	"github.com/AndersondSilva/wow-server-dashboard/internal/query"
	redisclient "github.com/AndersondSilva/wow-server-dashboard/internal/redis"
	"github.com/AndersondSilva/wow-server-dashboard/internal/repository"
	"github.com/AndersondSilva/wow-server-dashboard/internal/token"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	var logger *zap.Logger
	switch cfg.LogLevel {
	case "debug":
		logger, _ = zap.NewDevelopment()
	default:
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Document store: dashboard users + config singleton.
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Fatal("failed to ping mongodb", zap.Error(err))
	}
	mongoDB := mongoClient.Database(cfg.MongoDatabase)

	// Relational game-server stores.
	authDB, err := openMySQL(cfg.AuthDBDSN)
	if err != nil {
		logger.Fatal("failed to connect to auth database", zap.Error(err))
	}
	defer authDB.Close()

	charDB, err := openMySQL(cfg.CharactersDBDSN)
	if err != nil {
		logger.Fatal("failed to connect to characters database", zap.Error(err))
	}
	defer charDB.Close()

	// Redis: config/view cache + event streams.
	redis, err := redisclient.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redis.Close()

	userRepo := repository.NewUserRepository(mongoDB)
	configRepo := repository.NewConfigRepository(mongoDB, redis.Client, logger)
	gameRepo := repository.NewGameAccountRepository(authDB)
	charRepo := repository.NewCharacterRepository(charDB)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("failed to ensure user indexes", zap.Error(err))
	}
	if err := gameRepo.EnsureRealm(ctx, cfg.ServerName, cfg.RealmAddress); err != nil {
		logger.Warn("failed to bootstrap realmlist", zap.Error(err))
	}

	tokens := token.NewManager([]byte(cfg.JWTSecret))
	publisher := events.NewPublisher(redis.Client)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	verifier := googleauth.NewVerifier()

	commandSvc := command.NewAccountCommandService(
		userRepo, gameRepo, configRepo, verifier, mailer, publisher, tokens, cfg, logger)
	authQuerySvc := query.NewAuthQueryService(userRepo, gameRepo, tokens)
	accountQuerySvc := query.NewAccountQueryService(gameRepo, charRepo, configRepo)

	authHandler := handler.NewAuthHandler(commandSvc, authQuerySvc)
	accountHandler := handler.NewAccountHandler(commandSvc, accountQuerySvc)
	adminHandler := handler.NewAdminHandler(commandSvc, accountQuerySvc)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.GoogleLogin)
			auth.POST("/login-game", authHandler.GameLogin)
			auth.POST("/check-username", accountHandler.CheckUsername)
			auth.GET("/me", middleware.AuthMiddleware(tokens), authHandler.Me)
			auth.PUT("/profile", middleware.AuthMiddleware(tokens), accountHandler.UpdateProfile)
		}

		api.GET("/characters", accountHandler.ListCharacters)

		admin := api.Group("/admin")
		{
			admin.GET("/config", adminHandler.GetConfig)
			admin.PUT("/config", middleware.AuthMiddleware(tokens), middleware.RequireAdmin(), adminHandler.UpdateConfig)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("account service starting", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func openMySQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
