package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/replyloop/engine-go/internal/api"
	"github.com/replyloop/engine-go/pkg/actions"
	"github.com/replyloop/engine-go/pkg/classify"
	"github.com/replyloop/engine-go/pkg/db"
	"github.com/replyloop/engine-go/pkg/interfaces/platform"
	"github.com/replyloop/engine-go/pkg/leads"
	"github.com/replyloop/engine-go/pkg/llm/openai"
	"github.com/replyloop/engine-go/pkg/logging"
	"github.com/replyloop/engine-go/pkg/memory"
	"github.com/replyloop/engine-go/pkg/pipeline"
	"github.com/replyloop/engine-go/pkg/replies"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Only log warning since .env is optional
		logrus.WithError(err).Warn("Error loading .env file")
	}

	// Initialize logger
	log := logrus.New()
	log.SetFormatter(logging.NewColoredJSONFormatter())

	// Get log level from environment
	logLevel := os.Getenv("LOG_LEVEL")
	if level, err := logrus.ParseLevel(logLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithFields(logrus.Fields{
			"attempted_level": logLevel,
			"default_level":   "INFO",
		}).Warn("Invalid log level specified, defaulting to INFO")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database and stores
	database, err := db.SetupDatabase(log)
	if err != nil {
		log.WithError(err).Fatal("Failed to set up database")
	}

	commentStore := memory.NewCommentStore(log, database)
	replyStore := memory.NewReplyStore(log, database)
	settingsStore := memory.NewSettingsStore(log, database)

	// LLM client
	openaiConfig, err := openai.NewConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to create OpenAI config")
	}
	openaiConfig.Logger = log

	llmClient, err := openai.NewClient(openaiConfig)
	if err != nil {
		log.WithError(err).Fatal("Failed to create OpenAI client")
	}

	// Decision pipeline
	engine, err := pipeline.New(pipeline.Config{
		Settings:   settingsStore,
		Comments:   commentStore,
		Replies:    replyStore,
		Classifier: classify.NewLLMClassifier(llmClient, log),
		Detector:   leads.NewLLMDetector(llmClient, log),
		Generator:  replies.NewBrandVoiceGenerator(llmClient, settingsStore, log),
		Logger:     log,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to create decision pipeline")
	}

	// Reply delivery loop. Skipped when platform credentials are not
	// configured so the HTTP surface still works in development.
	if platformConfig, err := platform.NewConfig(); err != nil {
		log.WithError(err).Warn("Platform client not configured, reply delivery disabled")
	} else {
		platformConfig.Logger = log

		platformClient, err := platform.NewClient(platformConfig)
		if err != nil {
			log.WithError(err).Fatal("Failed to create platform client")
		}

		deliverer := actions.NewReplyDeliverer(replyStore, platformClient, log, actions.DefaultDeliveryConfig())
		go func() {
			if err := deliverer.Run(ctx, time.Minute); err != nil && err != context.Canceled {
				log.WithError(err).Error("Reply delivery loop stopped with error")
			}
		}()
	}

	// HTTP server
	handlers := api.NewHandlers(engine, settingsStore, log)
	router := api.NewRouter(handlers)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info("Received shutdown signal")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}()

	log.WithField("port", port).Info("Starting comment decision engine")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("Server stopped with error")
	}

	log.Info("Engine shutdown complete")
}
