package main

import (
	"os"
	"os/signal"
	"syscall"

	"jusbook/internal/config"
	"jusbook/pkg/log"
	"jusbook/pkg/redis"
)

func main() {
	envErr := config.LoadEnv()

	logger := log.NewLogger()
	if envErr != nil {
		logger.Warnf("No .env file loaded, using process environment: %v", envErr)
	}

	appConfig := config.LoadAppConfig()
	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()

	options := []config.ServerOption{
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithAppConfig(appConfig),
		config.WithValidator(validator),
		config.WithUtils(),
		config.WithMiddleware(),
	}
	if appConfig.SessionStore == config.SessionStoreRedis {
		options = append(options, config.WithRedisServer(redis.New(logger, redis.Options{
			Address:  appConfig.RedisAddress,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})))
	}
	options = append(options, config.WithStack())

	server, err := config.NewServer(options...)
	if err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "Failed to build server")
	}

	if err := server.RegisterHandler(); err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "Failed to register handlers")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	log.Info(log.Fields{
		"port":          appConfig.Port,
		"env":           appConfig.Env,
		"session_store": appConfig.SessionStore,
	}, "Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		log.Error(log.Fields{"error": err.Error()}, "Error during shutdown")
	}
}
