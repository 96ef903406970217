package recommendation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/voyagio/voyagio-server/config"
	generativeAI "github.com/voyagio/voyagio-server/internal/api/generative_ai"
	"github.com/voyagio/voyagio-server/internal/types"
)

// Enrichment failure taxonomy. The fallback decision is a typed branch on
// these sentinels, not a caught-exception branch; none of them ever reach a
// caller of Recommend.
var (
	ErrEnrichmentTimeout   = errors.New("enrichment timed out")
	ErrEnrichmentParse     = errors.New("no parseable ranking in enrichment response")
	ErrEnrichmentTransport = errors.New("enrichment transport failure")
)

const (
	defaultCandidateCount    = 10
	defaultTopK              = 10
	defaultEnrichmentTimeout = 15 * time.Second
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// Recommend returns the best topK candidates for the request. It never
	// fails: enrichment quality is the only variable in its output. The
	// activity context is accepted for callers that track one per turn; it
	// does not influence ranking.
	Recommend(ctx context.Context, serviceType types.ServiceType, location string, profile types.TravelerProfile, activityContext map[string]any) []types.ServiceCandidate

	// Rerank re-sorts an already-scored list by its score field, descending.
	// Scores are not recomputed; a missing score sorts as zero.
	Rerank(ctx context.Context, candidates []types.ServiceCandidate, profile types.TravelerProfile) []types.ServiceCandidate
}

type ServiceImpl struct {
	logger            *slog.Logger
	aiClient          generativeAI.Client
	candidateCount    int
	topK              int
	enrichmentTimeout time.Duration
	temperature       float64
}

// NewServiceImpl creates the recommendation pipeline. aiClient may be nil, in
// which case every request takes the heuristic fallback path.
func NewServiceImpl(aiClient generativeAI.Client, cfg *config.Config, logger *slog.Logger) *ServiceImpl {
	s := &ServiceImpl{
		logger:            logger,
		aiClient:          aiClient,
		candidateCount:    defaultCandidateCount,
		topK:              defaultTopK,
		enrichmentTimeout: defaultEnrichmentTimeout,
		temperature:       0.5,
	}
	if cfg != nil {
		if cfg.Recommendation.CandidateCount > 0 {
			s.candidateCount = cfg.Recommendation.CandidateCount
		}
		if cfg.Recommendation.TopK > 0 {
			s.topK = cfg.Recommendation.TopK
		}
		if cfg.LLM.Timeout > 0 {
			s.enrichmentTimeout = cfg.LLM.Timeout
		}
		if cfg.LLM.Temperature > 0 {
			s.temperature = cfg.LLM.Temperature
		}
	}
	return s
}

func (s *ServiceImpl) Recommend(ctx context.Context, serviceType types.ServiceType, location string, profile types.TravelerProfile, activityContext map[string]any) (out []types.ServiceCandidate) {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "Recommend", trace.WithAttributes(
		attribute.String("service.type", string(serviceType)),
		attribute.String("location", location),
		attribute.Bool("activity_context.present", len(activityContext) > 0),
	))
	defer span.End()

	l := s.logger.With(
		slog.String("method", "Recommend"),
		slog.String("serviceType", string(serviceType)),
		slog.String("location", location),
	)

	candidates := generateCandidates(serviceType, location, s.candidateCount)
	if len(candidates) == 0 {
		return candidates
	}

	// Containment boundary: whatever goes wrong past generation, the caller
	// still gets the raw generated candidates.
	defer func() {
		if r := recover(); r != nil {
			l.ErrorContext(ctx, "Recovered panic during ranking, returning unscored candidates",
				slog.Any("panic", r))
			span.SetStatus(codes.Error, "ranking panic")
			out = truncate(candidates, s.topK)
		}
	}()

	ranking, err := s.fetchRanking(ctx, candidates, profile)
	if err != nil {
		switch {
		case errors.Is(err, ErrEnrichmentTimeout):
			l.WarnContext(ctx, "Enrichment timed out, using heuristic ranking",
				slog.Duration("budget", s.enrichmentTimeout))
		case errors.Is(err, ErrEnrichmentParse):
			l.WarnContext(ctx, "Enrichment response unusable, using heuristic ranking",
				slog.Any("error", err))
		default:
			l.WarnContext(ctx, "Enrichment call failed, using heuristic ranking",
				slog.Any("error", err))
		}
		span.RecordError(err)
		span.SetAttributes(attribute.String("ranking.strategy", "heuristic"))
		return applyHeuristicRanking(candidates, profile, s.topK)
	}

	l.InfoContext(ctx, "Applying external ranking", slog.Int("rankedPositions", len(ranking)))
	span.SetAttributes(attribute.String("ranking.strategy", "external"))
	subset := rankedSubsetSize
	if subset > len(candidates) {
		subset = len(candidates)
	}
	return applyExternalRanking(candidates, ranking, subset, s.topK)
}

// fetchRanking races the external reasoning call against the enrichment
// budget. On expiry the pending call is abandoned; cancellation of the remote
// side is best-effort via the context.
func (s *ServiceImpl) fetchRanking(ctx context.Context, candidates []types.ServiceCandidate, profile types.TravelerProfile) ([]int, error) {
	if s.aiClient == nil {
		return nil, fmt.Errorf("%w: no client configured", ErrEnrichmentTransport)
	}

	subset := candidates
	if len(subset) > rankedSubsetSize {
		subset = subset[:rankedSubsetSize]
	}
	prompt := buildRankingPrompt(subset, profile)

	ctx, cancel := context.WithTimeout(ctx, s.enrichmentTimeout)
	defer cancel()

	type enrichResult struct {
		text string
		err  error
	}
	resultCh := make(chan enrichResult, 1)
	go func() {
		// A panicking client must degrade like any other transport failure,
		// not take the process down from a detached goroutine.
		defer func() {
			if r := recover(); r != nil {
				resultCh <- enrichResult{err: fmt.Errorf("%w: panic: %v", ErrEnrichmentTransport, r)}
			}
		}()
		text, err := s.aiClient.GenerateContent(ctx, prompt, &genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(s.temperature)),
		})
		resultCh <- enrichResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w after %s", ErrEnrichmentTimeout, s.enrichmentTimeout)
	case res := <-resultCh:
		if res.err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEnrichmentTransport, res.err)
		}
		return parseRanking(res.text)
	}
}

func (s *ServiceImpl) Rerank(ctx context.Context, candidates []types.ServiceCandidate, profile types.TravelerProfile) []types.ServiceCandidate {
	_, span := otel.Tracer("RecommendationService").Start(ctx, "Rerank", trace.WithAttributes(
		attribute.Int("candidates.count", len(candidates)),
	))
	defer span.End()

	reranked := make([]types.ServiceCandidate, len(candidates))
	copy(reranked, candidates)
	sort.SliceStable(reranked, func(i, j int) bool {
		return scoreOrZero(reranked[i]) > scoreOrZero(reranked[j])
	})
	return reranked
}

// scoreOrZero reads a candidate's score for sorting only; unscored candidates
// sort last without being mutated.
func scoreOrZero(c types.ServiceCandidate) float64 {
	if c.Score == nil {
		return 0
	}
	return *c.Score
}
