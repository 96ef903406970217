package container

import (
	"context"
	"log/slog"

	"github.com/voyagio/voyagio-server/config"
	generativeAI "github.com/voyagio/voyagio-server/internal/api/generative_ai"
	"github.com/voyagio/voyagio-server/internal/api/recommendation"
	"github.com/voyagio/voyagio-server/internal/api/session"
)

// Container holds all application dependencies
type Container struct {
	Config                *config.Config
	Logger                *slog.Logger
	SessionStore          session.Store
	SessionHandler        *session.HandlerImpl
	RecommendationHandler *recommendation.HandlerImpl
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	// The AI client is optional: without credentials every recommendation
	// takes the heuristic fallback path instead of failing startup.
	var aiClient generativeAI.Client
	client, err := generativeAI.NewAIClient(ctx, cfg.LLM.Model)
	if err != nil {
		logger.Warn("Enrichment disabled, recommendations will use heuristic ranking only",
			slog.Any("error", err))
	} else {
		aiClient = client
	}

	store := session.NewMemoryStore()
	sessionService := session.NewServiceImpl(store, logger)
	sessionHandler := session.NewHandlerImpl(sessionService, logger)

	recommendationService := recommendation.NewServiceImpl(aiClient, cfg, logger)
	recommendationHandler := recommendation.NewHandlerImpl(recommendationService, logger)

	return &Container{
		Config:                cfg,
		Logger:                logger,
		SessionStore:          store,
		SessionHandler:        sessionHandler,
		RecommendationHandler: recommendationHandler,
	}, nil
}
