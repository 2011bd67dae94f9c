package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Source is one web citation from a response's grounding metadata.
type Source struct {
	URI   string
	Title string
}

// GroundedRequest describes one structured generation call.
type GroundedRequest struct {
	Prompt string
	Tier   ModelTier
	// ResponseMIMEType asks for serialized output instead of prose, e.g. "application/json".
	ResponseMIMEType string
	// ResponseSchema constrains the output shape. Nil means unconstrained.
	ResponseSchema *genai.Schema
	// SearchGrounding enables the google_search tool.
	SearchGrounding bool
	// ThinkingBudget caps reasoning tokens; zero leaves the model default.
	ThinkingBudget int32
}

// GroundedResponse is the text answer plus the web sources the model cited.
type GroundedResponse struct {
	Text    string
	Sources []Source
	Model   string
}

// SourceURIs returns the non-empty source URIs in citation order.
func (r *GroundedResponse) SourceURIs() []string {
	uris := make([]string, 0, len(r.Sources))
	for _, s := range r.Sources {
		if s.URI != "" {
			uris = append(uris, s.URI)
		}
	}
	return uris
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateGrounded runs one generation call and returns text plus grounding sources
	GenerateGrounded(ctx context.Context, req GroundedRequest) (*GroundedResponse, error)
	// GetModel returns the provider model name for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateGrounded generates content for the request's tier
func (c *GeminiClient) GenerateGrounded(ctx context.Context, req GroundedRequest) (*GroundedResponse, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	resp, err := c.client.Models.GenerateContent(ctx, modelName, genai.Text(req.Prompt), buildGenerateConfig(modelName, req))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	out, err := extractGroundedResponse(resp)
	if err != nil {
		return nil, err
	}
	out.Model = modelName
	return out, nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client. The genai client holds no
// long-lived connections, so there is nothing to release.
func (c *GeminiClient) Close() error {
	return nil
}

// buildGenerateConfig maps a request onto the genai config for model. Models
// that cannot combine search grounding with a JSON response get the tool only;
// their reply text is then parsed from a fenced block.
func buildGenerateConfig(model string, req GroundedRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if !req.SearchGrounding || SupportsGroundedJSON(model) {
		cfg.ResponseMIMEType = req.ResponseMIMEType
		cfg.ResponseSchema = req.ResponseSchema
	}
	if req.SearchGrounding {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if req.ThinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(req.ThinkingBudget)}
	}
	return cfg
}

// SupportsGroundedJSON reports whether model accepts a JSON response MIME type
// alongside the google_search tool. Gemini 1.x and 2.x reject the combination.
func SupportsGroundedJSON(model string) bool {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(model)), "models/")
	for _, prefix := range []string{"gemini-1.", "gemini-2."} {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

// extractGroundedResponse joins the first candidate's answer parts and collects
// web citations. Thought parts are skipped.
func extractGroundedResponse(resp *genai.GenerateContentResponse) (*GroundedResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	out := &GroundedResponse{}

	if candidate.Content != nil {
		var parts []string
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought || part.Text == "" {
				continue
			}
			parts = append(parts, part.Text)
		}
		out.Text = strings.Join(parts, "")
	}

	if candidate.GroundingMetadata != nil {
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			out.Sources = append(out.Sources, Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
		}
	}

	return out, nil
}
