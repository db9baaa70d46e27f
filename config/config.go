package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	MongoDBURL     string
	MongoDBName    string
	RedisURL       string
	RedisPassword  string
	RedisDB        int
	NATSURL        string
	LeetCodeAPIURL string

	// Sync policy values. These are tunables, not structural requirements.
	SubmissionPageSize int
	SubmissionDelay    time.Duration
	FetchMaxRetries    int
	StatsCacheTTL      time.Duration
	JobStatusTTL       time.Duration
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
	config := Config{
		HTTPPort:       getEnv("HTTPPORT", "8000"),
		MongoDBURL:     getEnv("MONGODBURL", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGODBNAME", "devquest"),
		RedisURL:       getEnv("REDISURL", "localhost:6379"),
		RedisPassword:  getEnv("REDISPASSWORD", ""),
		RedisDB:        getEnvInt("REDISDB", 0),
		NATSURL:        getEnv("NATSURL", "nats://localhost:4222"),
		LeetCodeAPIURL: getEnv("LEETCODEAPIURL", "https://leetcode.com"),

		SubmissionPageSize: getEnvInt("SUBMISSIONPAGESIZE", 20),
		SubmissionDelay:    getEnvDuration("SUBMISSIONDELAY", 2*time.Second),
		FetchMaxRetries:    getEnvInt("FETCHMAXRETRIES", 3),
		StatsCacheTTL:      getEnvDuration("STATSCACHETTL", time.Hour),
		JobStatusTTL:       getEnvDuration("JOBSTATUSTTL", 24*time.Hour),
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
