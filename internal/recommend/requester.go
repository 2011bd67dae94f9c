// Package recommend turns a submitted profile into a batch of career recommendations
// by querying the reasoning service with live search grounding.
package recommend

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/llm"
	"github.com/jonathan/career-compass/internal/logging"
	"github.com/jonathan/career-compass/internal/metrics"
	"github.com/jonathan/career-compass/internal/parsing"
	"github.com/jonathan/career-compass/internal/types"
)

// Defaults for Options fields left at zero.
const (
	DefaultThinkingBudget = 2048
	DefaultMaxSources     = 8
	DefaultRetryDelay     = 500 * time.Millisecond
	// MaxRetryWait caps the doubling wait between attempts.
	MaxRetryWait = 30 * time.Second
)

// Options tunes a Requester. Zero values fall back to the defaults above;
// MaxAttempts below 2 means a single attempt.
type Options struct {
	Model string
	// ThinkingBudget of zero uses DefaultThinkingBudget.
	ThinkingBudget int32
	MaxSources     int
	MaxAttempts    int
	// RequestTimeout bounds each service attempt. Zero means no timeout.
	RequestTimeout time.Duration
	RetryDelay     time.Duration
}

func (o Options) withDefaults() Options {
	if o.ThinkingBudget == 0 {
		o.ThinkingBudget = DefaultThinkingBudget
	}
	if o.MaxSources <= 0 {
		o.MaxSources = DefaultMaxSources
	}
	if o.MaxAttempts < 1 {
		o.MaxAttempts = 1
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	return o
}

// ClientFactory opens an llm.Client for one request.
type ClientFactory func(ctx context.Context, apiKey string) (llm.Client, error)

// GeminiClientFactory opens Gemini clients with model on the advanced tier.
func GeminiClientFactory(model string) ClientFactory {
	return func(ctx context.Context, apiKey string) (llm.Client, error) {
		return llm.NewClient(ctx, llm.DefaultConfig().WithModel(llm.TierAdvanced, model), apiKey)
	}
}

// Result is one successful batch.
type Result struct {
	BatchID string             `json:"batchId"`
	Paths   []types.CareerPath `json:"paths"`
	// RawText is the unmodified reply, kept for diagnostics.
	RawText string   `json:"rawText"`
	Sources []string `json:"sources"`
	Model   string   `json:"model,omitempty"`
	// Rejected holds one reason per entry dropped during validation.
	Rejected []error `json:"-"`
}

// Requester queries the reasoning service. It keeps no state between calls;
// identical profiles query the service again.
type Requester struct {
	apiKey    string
	opts      Options
	newClient ClientFactory
	logger    *zap.Logger
	sleep     func(ctx context.Context, d time.Duration) error
	jitter    func(limit time.Duration) time.Duration
}

// NewRequester builds a Requester. A nil factory uses Gemini with opts.Model.
// The API key is only checked when Submit runs.
func NewRequester(apiKey string, opts Options, factory ClientFactory, logger *zap.Logger) *Requester {
	opts = opts.withDefaults()
	if factory == nil {
		factory = GeminiClientFactory(opts.Model)
	}
	return &Requester{
		apiKey:    strings.TrimSpace(apiKey),
		opts:      opts,
		newClient: factory,
		logger:    logging.OrNop(logger),
		sleep:     sleepContext,
		jitter:    randomJitter,
	}
}

// Submit sends the profile to the reasoning service and returns the parsed batch.
//
// Failures are a *ProfileError for an invalid profile, a *ConfigurationError
// when no API key is set, a *ServiceError when the call fails, or a
// *parsing.ParseError when the reply cannot be read as an entry array.
func (r *Requester) Submit(ctx context.Context, profile types.UserProfile) (*Result, error) {
	start := time.Now()
	batchID := uuid.NewString()
	logger := r.logger.With(zap.String("batch_id", batchID))

	result, err := r.submit(ctx, logger, batchID, profile)

	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := string(KindOf(err))
		metrics.RecommendationRequests.WithLabelValues(outcome).Inc()
		logger.Error("recommendation request failed",
			zap.String("kind", outcome),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.RecommendationRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.RecommendationEntries.Observe(float64(len(result.Paths)))
	metrics.RecommendationRejectedEntries.Add(float64(len(result.Rejected)))
	logger.Info("recommendation request completed",
		zap.Int("entries", len(result.Paths)),
		zap.Int("rejected", len(result.Rejected)),
		zap.Int("sources", len(result.Sources)),
		zap.String("model", result.Model),
		zap.Duration("latency", time.Since(start)),
	)
	return result, nil
}

func (r *Requester) submit(ctx context.Context, logger *zap.Logger, batchID string, profile types.UserProfile) (*Result, error) {
	if err := profile.Validate(); err != nil {
		return nil, &ProfileError{Cause: err}
	}
	if r.apiKey == "" {
		return nil, &ConfigurationError{Message: "GEMINI_API_KEY is not set"}
	}

	client, err := r.newClient(ctx, r.apiKey)
	if err != nil {
		return nil, &ServiceError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	req := llm.GroundedRequest{
		Prompt:           BuildInstruction(profile),
		Tier:             llm.TierAdvanced,
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
		SearchGrounding:  true,
		ThinkingBudget:   r.opts.ThinkingBudget,
	}

	metrics.RecommendationsInFlight.Inc()
	resp, err := r.generate(ctx, logger, client, req)
	metrics.RecommendationsInFlight.Dec()
	if err != nil {
		return nil, err
	}

	paths, rejected, err := parsing.ParseCareerPaths(resp.Text)
	if err != nil {
		return nil, err
	}
	for _, reason := range rejected {
		logger.Warn("dropped invalid entry", zap.Error(reason))
	}

	sources := capSources(resp.SourceURIs(), r.opts.MaxSources)
	AssignBatch(paths, sources)

	model := resp.Model
	if model == "" {
		model = client.GetModel(llm.TierAdvanced)
	}

	return &Result{
		BatchID:  batchID,
		Paths:    paths,
		RawText:  resp.Text,
		Sources:  sources,
		Model:    model,
		Rejected: rejected,
	}, nil
}

// capSources keeps the first limit URIs in citation order.
func capSources(uris []string, limit int) []string {
	if len(uris) > limit {
		uris = uris[:limit]
	}
	return append(make([]string, 0, len(uris)), uris...)
}

// AssignBatch gives every entry a batch-unique id and the batch's source list.
func AssignBatch(paths []types.CareerPath, sources []string) {
	for i := range paths {
		paths[i].ID = fmt.Sprintf("job-%d", i)
		paths[i].SourceURLs = slices.Clone(sources)
		if paths[i].SourceURLs == nil {
			paths[i].SourceURLs = []string{}
		}
	}
}
