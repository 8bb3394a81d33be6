package platform

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds credentials and endpoints for the social platform
// write API (reply posting and comment likes)
type Config struct {
	// API Authentication (OAuth 1.0a)
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string

	// API Endpoints
	BaseURL          string
	CommentsEndpoint string
	LikesEndpoint    string

	// Delivery behavior
	RetryAttempts int

	// General Config
	Logger *logrus.Logger
}

func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	retryAttempts, _ := strconv.Atoi(getEnvOrDefault("PLATFORM_RETRY_ATTEMPTS", "3"))

	config := &Config{
		ConsumerKey:       os.Getenv("PLATFORM_CONSUMER_KEY"),
		ConsumerSecret:    os.Getenv("PLATFORM_CONSUMER_SECRET"),
		AccessToken:       os.Getenv("PLATFORM_ACCESS_TOKEN"),
		AccessTokenSecret: os.Getenv("PLATFORM_ACCESS_TOKEN_SECRET"),

		BaseURL:          getEnvOrDefault("PLATFORM_API_BASE_URL", "https://graph.socialhub.example/v1"),
		CommentsEndpoint: "/comments",
		LikesEndpoint:    "/likes",

		RetryAttempts: retryAttempts,

		Logger: logrus.New(),
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if parsedLevel, err := logrus.ParseLevel(level); err == nil {
			config.Logger.SetLevel(parsedLevel)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return fmt.Errorf("platform consumer credentials are required")
	}
	if c.AccessToken == "" || c.AccessTokenSecret == "" {
		return fmt.Errorf("platform access token credentials are required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("platform base URL is required")
	}
	if c.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
