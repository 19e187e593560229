package main

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/dodomains/dodomains/internal/app/server"
	"github.com/dodomains/dodomains/internal/app/service"
	"github.com/dodomains/dodomains/internal/config"
	"github.com/dodomains/dodomains/internal/logger"
	"github.com/dodomains/dodomains/internal/middleware"
	"github.com/dodomains/dodomains/internal/storage"
	"github.com/dodomains/dodomains/internal/worker"
)

var buildVersion string
var buildDate string
var buildCommit string

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func main() {
	options, err := config.Parse()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()
	log.Info("Build info",
		"version", orNA(buildVersion),
		"date", orNA(buildDate),
		"commit", orNA(buildCommit),
	)
	zapLogger := log.Log
	zap.ReplaceGlobals(zapLogger)

	if options.SessionSecret == config.DefaultSessionSecret {
		zapLogger.Warn("Using the development session secret, set SESSION_SECRET in production")
	}

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions, err := storage.CreateMemoryStorage()
	if err != nil {
		panic(err)
	}

	sweeper := worker.NewSessionSweeper(zapLogger, sessions, options.SessionTTL, 0)
	go sweeper.Run(ctx)

	limiter := middleware.NewRateLimiter(options.GenerateRate, options.GenerateBurst)
	defer limiter.Stop()

	gateway := service.NewGateway(options.GeneratorURL, options.GeneratorTimeout, &http.Client{}, zapLogger)
	generator := service.NewGenerator(sessions, gateway, zapLogger)
	auth := service.NewAuth(sessions, options.SessionSecret)

	r := server.Init(zapLogger, generator, auth, limiter)

	srv := &http.Server{
		Addr:              options.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if options.EnableHTTPS {
			manager := &autocert.Manager{
				Cache:      autocert.DirCache("cache-dir"),
				Prompt:     autocert.AcceptTOS,
				HostPolicy: autocert.HostWhitelist(options.Hosts()...),
			}
			srv.Addr = ":443"
			srv.TLSConfig = manager.TLSConfig()

			zapLogger.Info("Server is running with TLS", zap.Strings("hosts", options.Hosts()))
			serverErr <- srv.ListenAndServeTLS("", "")
			return
		}

		zapLogger.Info("Server is running",
			zap.String("hostname", options.Port),
			zap.String("generator", options.GeneratorURL),
		)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Error("Server error", zap.Error(err))
		}
		return
	case <-ctx.Done():
		zapLogger.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Error during server shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exited")
}
