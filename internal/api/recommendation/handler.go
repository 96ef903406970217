package recommendation

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/voyagio/voyagio-server/app/observability/metrics"
	"github.com/voyagio/voyagio-server/internal/api"
	"github.com/voyagio/voyagio-server/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	Recommend(w http.ResponseWriter, r *http.Request)
	Rerank(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	recommendationService Service
	logger                *slog.Logger
}

// NewHandlerImpl creates a new recommendation HandlerImpl instance.
func NewHandlerImpl(recommendationService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		recommendationService: recommendationService,
		logger:                logger,
	}
}

// Recommend handles POST /recommendations. The response always carries a
// ranked list; enrichment problems degrade the ranking, never the request.
func (h *HandlerImpl) Recommend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Recommend"))
	start := time.Now()

	var req types.RecommendRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid recommendation request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !req.ServiceType.Valid() {
		api.ErrorResponse(w, r, http.StatusBadRequest, "service_type must be one of accommodation, activities, transportation")
		return
	}
	if req.Location == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "location is required")
		return
	}

	recommendations := h.recommendationService.Recommend(ctx, req.ServiceType, req.Location, req.Profile, req.Context)

	m := metrics.Get()
	m.RecommendationRequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("service_type", string(req.ServiceType)),
	))
	m.RecommendationDurationSeconds.Record(ctx, time.Since(start).Seconds())

	api.WriteJSONResponse(w, r, http.StatusOK, types.RecommendResponse{
		Recommendations: recommendations,
		Count:           len(recommendations),
	})
}

// Rerank handles POST /recommendations/rerank.
func (h *HandlerImpl) Rerank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Rerank"))

	var req types.RerankRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid rerank request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	reranked := h.recommendationService.Rerank(ctx, req.Candidates, req.Profile)
	metrics.Get().RerankRequestsTotal.Add(ctx, 1)

	api.WriteJSONResponse(w, r, http.StatusOK, types.RecommendResponse{
		Recommendations: reranked,
		Count:           len(reranked),
	})
}
