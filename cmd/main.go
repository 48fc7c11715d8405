package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/campusgate/faqbot-backend/internal/faq"
	httpserver "github.com/campusgate/faqbot-backend/internal/http"
	httpH "github.com/campusgate/faqbot-backend/internal/http/handlers"
	httpMW "github.com/campusgate/faqbot-backend/internal/http/middleware"
	"github.com/campusgate/faqbot-backend/internal/platform/envutil"
	"github.com/campusgate/faqbot-backend/internal/platform/logger"
	"github.com/campusgate/faqbot-backend/internal/store"
)

func main() {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cataloguePath := envutil.String("CATALOGUE_PATH", "configs/sections.yaml")
	catalogue, err := store.LoadFile(cataloguePath)
	if err != nil {
		log.Fatal("Could not load catalogue", "path", cataloguePath, "error", err)
	}
	log.Info("Catalogue loaded", "path", cataloguePath, "sections", catalogue.Sections())

	svc := faq.NewService(catalogue)

	var origins []string
	if raw := envutil.String("ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	server := httpserver.NewServer(httpserver.RouterConfig{
		Logger:           log,
		QuestionsHandler: httpH.NewQuestionsHandler(log, svc),
		ChatHandler:      httpH.NewChatHandler(log, svc),
		HealthHandler:    httpH.NewHealthHandler(),
		AllowedOrigins:   origins,
		RateLimit: httpMW.RateLimitConfig{
			RequestsPerSecond: envutil.Float("RATE_LIMIT_RPS", httpMW.DefaultRateLimit.RequestsPerSecond),
			BurstSize:         envutil.Int("RATE_LIMIT_BURST", httpMW.DefaultRateLimit.BurstSize),
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := envutil.String("PORT", "8080")
	log.Info("Server listening", "port", port)
	if err := server.Run(ctx, ":"+port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
