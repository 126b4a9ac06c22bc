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

	"bloodlink/internal/db"
	"bloodlink/internal/directory"
	"bloodlink/internal/feed"
	"bloodlink/internal/genai"
	"bloodlink/internal/matcher"
	"bloodlink/internal/notify"
	"bloodlink/internal/server"
	"bloodlink/internal/store"
	"bloodlink/internal/support"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	cognitoClient := cognitoidentityprovider.NewFromConfig(awsConfig)
	snsClient := sns.NewFromConfig(awsConfig)

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	userRepo := store.NewUserRepository(pool)
	donorRepo := store.NewDonorRepository(pool)
	requestRepo := store.NewRequestRepository(pool)
	hospitalRepo := store.NewHospitalRepository(pool)

	genaiClient := genai.NewClient(
		config.GenAIBaseURL,
		config.GenAIAPIKey,
		time.Duration(config.GenAITimeoutSec)*time.Second,
		logger,
	)
	matchSvc := matcher.New(genaiClient, logger)
	supportHub := support.NewHub(genaiClient, logger)
	notifier := notify.NewNotifier(snsClient, config.NotifyTopicARN, logger)

	pollInterval := time.Duration(config.FeedPollIntervalSec) * time.Second

	donorBoard := directory.NewDonorBoard()
	donorSub := feed.Subscribe(ctx, donorRepo.AvailableDonors, pollInterval)
	go donorBoard.Run(ctx, donorSub)

	requestBoard := directory.NewRequestBoard()
	requestSub := feed.Subscribe(ctx, requestRepo.ActiveRequests, pollInterval)
	go requestBoard.Run(ctx, requestSub)

	jwkCache, err := jwk.NewCache(context.Background(), httprc.NewClient())
	if err != nil {
		return fmt.Errorf("failed to initilaize jwk cache: %w", err)
	}

	jwksURL := fmt.Sprintf("%s/.well-known/jwks.json", config.CognitoIssuerURL)

	err = jwkCache.Register(context.Background(), jwksURL)
	if err != nil {
		return fmt.Errorf("failed to register cognito jwk with cache: %w", err)
	}

	srv, err := server.New(
		config,
		logger,
		cognitoClient,
		userRepo,
		donorRepo,
		requestRepo,
		hospitalRepo,
		donorBoard,
		requestBoard,
		matchSvc,
		supportHub,
		notifier,
		jwkCache,
		jwksURL,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
