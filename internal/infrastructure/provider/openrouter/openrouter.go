package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/audit-service/internal/config"
	"github.com/wekeepgrowing/audit-service/internal/domain/entity"
	apperrors "github.com/wekeepgrowing/audit-service/internal/domain/errors"
	"github.com/wekeepgrowing/audit-service/internal/domain/provider"
)

const (
	defaultBaseURL     = "https://openrouter.ai/api/v1/"
	defaultModel       = "openai/gpt-4o-mini"
	defaultTemperature = 0.7
	defaultMaxTokens   = 4000
)

// systemPrompt instructs the model to answer with a bare JSON object so the
// content can be parsed and shape-checked without stripping prose.
const systemPrompt = `You are a security audit expert. Analyze the provided audit protocol and respond in the following JSON format:
{
  "summary": "A concise summary of the protocol",
  "keyFindings": ["finding 1", "finding 2", ...],
  "recommendations": ["recommendation 1", "recommendation 2", ...]
}

Make sure the response is a valid JSON object with no additional text before or after it.`

// Client calls the OpenRouter chat-completions endpoint through the OpenAI
// SDK. One shot per request, no retry; a failed generation is retried by
// the user.
type Client struct {
	api    *openai.Client
	cfg    config.OpenRouterConfig
	logger *zap.Logger
}

// NewClient creates a new OpenRouter summary provider.
func NewClient(cfg config.OpenRouterConfig, logger *zap.Logger) provider.SummaryProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}

	return &Client{
		api:    openai.NewClient(opts...),
		cfg:    cfg,
		logger: logger,
	}
}

// responseContent is the JSON object the model is asked to produce.
type responseContent struct {
	Summary         *string  `json:"summary"`
	KeyFindings     []string `json:"keyFindings"`
	Recommendations []string `json:"recommendations"`
}

// GenerateSummary sends the protocol as a system+user exchange and
// shape-validates the JSON body of the completion.
func (c *Client) GenerateSummary(ctx context.Context, protocol string) (*entity.ProtocolSummary, error) {
	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(protocol),
		}),
		Model:       openai.F(openai.ChatModel(c.cfg.Model)),
		Temperature: openai.F(c.cfg.Temperature),
		MaxTokens:   openai.F(c.cfg.MaxTokens),
	})
	if err != nil {
		c.logger.Error("Completion request failed",
			zap.String("model", c.cfg.Model),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamService, err)
	}

	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in completion", apperrors.ErrInvalidResponseShape)
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("%w: empty message content", apperrors.ErrInvalidResponseShape)
	}

	var parsed responseContent
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		c.logger.Warn("Completion content is not valid JSON",
			zap.String("model", c.cfg.Model),
			zap.Error(err))
		return nil, fmt.Errorf("%w: content is not valid JSON: %v", apperrors.ErrInvalidResponseShape, err)
	}

	if parsed.Summary == nil || *parsed.Summary == "" {
		return nil, fmt.Errorf("%w: missing summary field", apperrors.ErrInvalidResponseShape)
	}
	if parsed.KeyFindings == nil || parsed.Recommendations == nil {
		return nil, fmt.Errorf("%w: missing keyFindings or recommendations", apperrors.ErrInvalidResponseShape)
	}

	return &entity.ProtocolSummary{
		Summary:         *parsed.Summary,
		KeyFindings:     parsed.KeyFindings,
		Recommendations: parsed.Recommendations,
	}, nil
}
