package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/tronghn/taskhub/internal/api/http/context"
	"github.com/tronghn/taskhub/internal/api/http/router"
	"github.com/tronghn/taskhub/internal/config"
	"github.com/tronghn/taskhub/internal/logger"
	"github.com/tronghn/taskhub/internal/mailer"
	"github.com/tronghn/taskhub/internal/model"
	"github.com/tronghn/taskhub/internal/repository/postgres"
	redisrepo "github.com/tronghn/taskhub/internal/repository/redis"
	"github.com/tronghn/taskhub/internal/server"
	"github.com/tronghn/taskhub/internal/service"
	"github.com/tronghn/taskhub/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	rdb, err := redisrepo.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer rdb.Close()

	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	otpRepo := redisrepo.NewOTPRepository(rdb)
	sessionRepo := redisrepo.NewSessionRepository(rdb)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	var mail model.Mailer
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		mail = mailer.NewLogMailer(logger)
	}

	otpService := service.NewOTP(otpRepo, mail, logger, cfg.OTP.TTL)
	sessionService := service.NewSession(tokenManager, sessionRepo, logger, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authService := service.NewAuth(userRepo, otpService, sessionService, logger)
	taskService := service.NewTask(taskRepo, categoryRepo, logger)
	categoryService := service.NewCategory(categoryRepo, logger)
	profileService := service.NewProfile(userRepo, otpService, sessionService, logger)

	ctxMgr := httpctx.NewManager()

	r := router.New(authService, sessionService, taskService, categoryService, profileService, ctxMgr, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
