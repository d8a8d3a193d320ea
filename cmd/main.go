package main

import (
	"log"
	"os"

	"github.com/liyunrui/meal-prep/config"
	"github.com/liyunrui/meal-prep/routes"
	"github.com/liyunrui/meal-prep/services"
	"github.com/liyunrui/meal-prep/utils"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env feeds environment overrides for the config file; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load("./config/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address(),
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	sessions := services.NewRedisSessionStore(rdb)

	if err := utils.InitS3(cfg.AWS.Region); err != nil {
		logger.WithError(err).Warn("S3 unavailable, profile image uploads disabled")
	}

	hub := services.NewTotalsHub()

	r := routes.SetupRouter(cfg, db, sessions, hub, logger)

	logger.Infof("listening on %s", cfg.Server.Address())
	if err := r.Run(cfg.Server.Address()); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
