package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/devlinkhq/devlink/internal/auth"
	"github.com/devlinkhq/devlink/internal/config"
	"github.com/devlinkhq/devlink/internal/github"
	"github.com/devlinkhq/devlink/internal/handler"
	"github.com/devlinkhq/devlink/internal/mailer"
	"github.com/devlinkhq/devlink/internal/repository"
	"github.com/devlinkhq/devlink/internal/usecase"
	"github.com/devlinkhq/devlink/internal/validation"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	logger.Info().Msg("successfully connected to database")

	db := client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	profileRepo := repository.NewProfileMongoRepository(ctx, &logger, db)
	postRepo := repository.NewPostMongoRepository(db)

	jwtIssuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiresIn)
	resetMailer := mailer.NewMailer(&logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, profileRepo, jwtIssuer)
	resetUsecase := usecase.NewPasswordResetUsecase(userRepo, resetMailer, cfg)
	profileUsecase := usecase.NewProfileUsecase(profileRepo, userRepo, github.NewClient())
	postUsecase := usecase.NewPostUsecase(postRepo)

	validator, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build validator")
	}

	authHandler := handler.NewAuthHandler(authUsecase, resetUsecase, validator, &logger)
	profileHandler := handler.NewProfileHandler(profileUsecase, validator, &logger)
	postHandler := handler.NewPostHandler(postUsecase, validator, &logger)

	router := handler.NewRouter(&logger, jwtIssuer, userRepo, authHandler, profileHandler, postHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Int("port", cfg.Port).Msg("server starting")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}
