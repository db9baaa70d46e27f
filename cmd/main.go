package main

import (
	"context"
	"log"

	"devquest/api"
	"devquest/cache"
	configs "devquest/config"
	"devquest/jobs"
	"devquest/leetcode"
	"devquest/logger"
	"devquest/mongoconn"
	"devquest/natsclient"
	"devquest/repository"
	"devquest/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	configValues := configs.LoadConfig()

	zapLogger, err := logger.NewLogger("analytics")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	mongoclientInstance, err := mongoconn.ConnectDB(ctx, configValues.MongoDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoclientInstance.Disconnect(ctx)

	repoInstance := repository.NewRepository(mongoclientInstance, configValues.MongoDBName)
	if err := repoInstance.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	redisCache := cache.NewRedisCache(
		configValues.RedisURL,
		configValues.RedisPassword,
		configValues.RedisDB,
		zapLogger,
	)
	defer redisCache.Close()

	natsClient, err := natsclient.NewNatsClient(configValues.NATSURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsClient.Close()

	leetcodeClient := leetcode.NewClient(leetcode.ClientOptions{
		BaseURL:    configValues.LeetCodeAPIURL,
		PageSize:   configValues.SubmissionPageSize,
		PageDelay:  configValues.SubmissionDelay,
		MaxRetries: configValues.FetchMaxRetries,
	}, zapLogger)
	graphqlClient := leetcode.NewGraphQLClient(configValues.LeetCodeAPIURL, zapLogger)

	serviceInstance := service.NewService(
		repoInstance,
		redisCache,
		leetcodeClient,
		graphqlClient,
		configValues.StatsCacheTTL,
		zapLogger,
	)

	queue := jobs.NewQueue(natsClient, redisCache, serviceInstance, configValues.JobStatusTTL, zapLogger)
	if err := queue.Start(); err != nil {
		log.Fatalf("Failed to start sync worker: %v", err)
	}
	defer queue.Stop()

	cronInstance := serviceInstance.StartCronJob(queue, service.NoCredentials{})
	defer cronInstance.Stop()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Cookie, x-csrftoken",
	}))

	handler := api.NewHandler(serviceInstance, queue, zapLogger)
	api.SetupRoutes(app, handler)

	log.Printf("Analytics service running on port %s", configValues.HTTPPort)
	if err := app.Listen(":" + configValues.HTTPPort); err != nil {
		log.Fatalf("Failed to serve HTTP server: %v", err)
	}
}
