package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/quantonganh/newsletter"
	"github.com/quantonganh/newsletter/bolt"
	"github.com/quantonganh/newsletter/http"
	"github.com/quantonganh/newsletter/postgres"
)

func main() {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}

	viper.SetDefault("db.type", "postgres")
	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("http.insertTimeout", "5s")
	viper.SetDefault("log.level", "info")

	var config *newsletter.Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatal(err)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn: config.Sentry.DSN,
	}); err != nil {
		log.Fatalf("sentry.Init: %v", err)
	}
	defer sentry.Flush(2 * time.Second)

	a, err := newApp(config)
	if err != nil {
		log.Fatalf("%+v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
	}()

	if err := a.Run(ctx); err != nil {
		_ = a.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	<-ctx.Done()

	if err := a.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	config              *newsletter.Config
	logger              zerolog.Logger
	db                  newsletter.Database
	subscriptionService newsletter.SubscriptionService
	httpServer          *http.Server
}

func newApp(config *newsletter.Config) (*app, error) {
	level, err := zerolog.ParseLevel(config.Log.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log.level")
	}
	logger := zerolog.New(os.Stdout).Level(level).With().
		Timestamp().
		Logger()

	a := &app{
		config:     config,
		logger:     logger,
		httpServer: http.NewServer(logger),
	}

	switch config.DB.Type {
	case "postgres":
		db := postgres.NewDB(config.DB.URL)
		db.MaxOpenConns = config.DB.MaxOpenConns
		db.MaxIdleConns = config.DB.MaxIdleConns
		db.ConnMaxLifetime = config.DB.ConnMaxLifetime
		a.db = db
		a.subscriptionService = postgres.NewSubscriptionService(db)
	case "bolt":
		db := bolt.NewDB(config.DB.Path)
		a.db = db
		a.subscriptionService = bolt.NewSubscriptionService(db)
	default:
		return nil, errors.Errorf("unsupported db.type %q", config.DB.Type)
	}

	return a, nil
}

func (a *app) Run(ctx context.Context) error {
	if err := a.db.Open(); err != nil {
		return err
	}
	a.logger.Info().Str("db_type", a.config.DB.Type).Msg("Connected to the subscription store")

	a.httpServer.Addr = a.config.HTTP.Addr
	a.httpServer.InsertTimeout = a.config.HTTP.InsertTimeout
	a.httpServer.SubscriptionService = a.subscriptionService

	if err := a.httpServer.Open(); err != nil {
		return err
	}
	a.logger.Info().Str("url", a.httpServer.URL()).Msg("Server started")

	return nil
}

func (a *app) Close() error {
	if a.httpServer != nil {
		if err := a.httpServer.Close(); err != nil {
			return err
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return err
		}
	}

	return nil
}
