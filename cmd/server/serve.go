package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hirewire/hirewire-backend/hirewire-session/internal/api/response"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/api/route"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/auth"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/build"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/cache"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/database"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/env"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/realtime"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/repository"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/usecase"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/util"
)

const ringTimeout = 45 * time.Second

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serves the hirewire session api",
		RunE:  run,
	}
}

func SetLogs() {
	now := time.Now()
	logFileName := now.Format("2006-01-02") + ".log"
	logFilePath := path.Join("./storage/logs", logFileName)

	if err := os.MkdirAll("./storage/logs", 0755); err != nil {
		logrus.Error("error creating log directory:", err)
		return
	}

	file, err := os.OpenFile(logFilePath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		logrus.Error("error opening log file:", err)
		return
	}

	mw := io.MultiWriter(os.Stdout, file)
	logrus.SetOutput(mw)

	logrus.SetFormatter(&logrus.JSONFormatter{
		DisableHTMLEscape: true,
		TimestampFormat:   "2006-01-02 15:04:05",
	})
	logrus.SetReportCaller(true)
}

func run(cmd *cobra.Command, args []string) error {
	SetLogs()

	logrus.Infof("Build time: %s", build.Time)
	logrus.Infof("Go version: %s", build.GoVersion)

	envFile := os.Getenv(env.EnvFile)
	if envFile == "" {
		envFile = ".env"
	}
	environment, err := env.NewEnv(envFile)
	if err != nil {
		return err
	}
	logrus.Infof("App started in %s environment", environment.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	maxAttempts := 10
	retryInterval := 2 * time.Second
	client, err := database.ConnectToMongoDB(ctx, environment.MongoDbConnectionUrl, maxAttempts, retryInterval)
	if err != nil {
		return err
	}

	db := client.Database(environment.DbName)
	err = db.Client().Ping(ctx, nil)
	if err != nil {
		return err
	}
	logrus.Info("Database pinged successfully!!!")

	redisCache := cache.New(&cache.Config{
		Host:     environment.RedisHost,
		Port:     environment.RedisPort,
		Password: environment.RedisPassword,
	})
	defer redisCache.Close()

	authService := auth.NewService(environment.JWTKey)

	hub := realtime.NewHub()

	pushRepo := repository.NewPushSubscriptionRepo(db, domain.CollectionPushSubscription)
	pushUC := usecase.NewPushUC(pushRepo, usecase.VapidConfig{
		PublicKey:  environment.VapidPublicKey,
		PrivateKey: environment.VapidPrivateKey,
		Subscriber: environment.VapidSubscriber,
	}, 10*time.Second)

	notificationRepo := repository.NewNotificationRepo(db, domain.CollectionNotification)
	notificationUC := usecase.NewNotificationUC(notificationRepo, redisCache, hub, pushUC, 10*time.Second)

	chatRoomRepo := repository.NewChatRoomRepo(db, domain.CollectionChatRoom)
	chatRoomUC := usecase.NewChatRoomUC(chatRoomRepo, hub, 10*time.Second)

	callUC := usecase.NewCallUC(hub, notificationUC, ringTimeout)

	app := fiber.New(fiber.Config{
		AppName: "hirewire_session_service",
	})

	app.Use(func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				logrus.Error(r)
				response.SendError(c, fiber.StatusInternalServerError, "Internal Server Error")
				return
			}
		}()
		return c.Next()
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return response.SendSuccess(c, nil, "ok")
	})

	route.RegisterNotificationRoutes(app, notificationUC, authService)
	route.RegisterChatRoutes(app, chatRoomUC, authService)
	route.RegisterCallRoutes(app, callUC, authService)
	route.RegisterPushRoutes(app, pushUC, authService)

	serveCtx, serveCancel := context.WithCancel(context.Background())

	go func() {
		defer util.RecoverGoroutinePanic()
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
		logrus.Info("signal caught. shutting down...")
		serveCancel()
		app.Shutdown()
	}()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer util.RecoverGoroutinePanic()
		defer wg.Done()
		defer serveCancel()
		realtimeServer := realtime.NewServer(hub, authService)
		if err := realtimeServer.Serve(serveCtx, environment.RealtimePort); err != nil {
			logrus.Error(err)
		}
	}()

	logrus.Infof("Session API STARTED at http://127.0.0.1:%s", environment.AppPort)
	err = app.Listen(fmt.Sprintf(":%s", environment.AppPort))
	if err != nil {
		logrus.Error(err)
	}

	serveCancel()
	wg.Wait()
	return nil
}
