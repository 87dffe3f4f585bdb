// Package cloud provides the hosted chat-completions client using the OpenAI
// SDK against an OpenAI-compatible endpoint. It adds the behavior providers
// do not give us for free: a jittered pre-request delay to ease rate-limit
// pressure, a model fallback chain advanced only on rate-limit-class errors,
// and decoding of provider error bodies into a user-renderable detail string.
package cloud

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/studysnap/aicore/internal/domain"
	"github.com/studysnap/aicore/internal/observability"
)

// Client implements domain.CloudClient.
type Client struct {
	api      openai.Client
	settings domain.Settings
	minDelay time.Duration
	maxDelay time.Duration
}

// NewClient creates a new cloud client (DI constructor).
func NewClient(cfg *Config, settings domain.Settings) *Client {
	opts := []option.RequestOption{
		// Fallback policy lives in this package; SDK retries would fight it.
		option.WithMaxRetries(0),
	}

	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(cfg.Timeout)*time.Second))
	}

	return &Client{
		api:      openai.NewClient(opts...),
		settings: settings,
		minDelay: time.Duration(cfg.MinDelayMillis) * time.Millisecond,
		maxDelay: time.Duration(cfg.MaxDelayMillis) * time.Millisecond,
	}
}

// Complete sends one system/user prompt pair and returns the completion text.
func (c *Client) Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage(userPrompt),
	}
	return c.completeWithFallback(ctx, TextModelFallbacks(model), messages)
}

// CompleteChat sends the system prompt followed by the full message history.
func (c *Client) CompleteChat(ctx context.Context, model, systemPrompt string, conversation []domain.Message) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(conversation)+1)
	messages = append(messages, openai.SystemMessage(systemPrompt))

	for _, msg := range conversation {
		switch msg.Role {
		case domain.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		case domain.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	return c.completeWithFallback(ctx, TextModelFallbacks(model), messages)
}

// CompleteVision sends a base64-encoded image with a text prompt as a
// content-parts message. Vision models have their own fallback chain.
func (c *Client) CompleteVision(ctx context.Context, model, systemPrompt, userPrompt, imageBase64 string) (string, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: "data:image/jpeg;base64," + imageBase64,
		}),
		openai.TextContentPart(userPrompt),
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage(parts),
	}

	return c.completeWithFallback(ctx, VisionModelFallbacks(model), messages)
}

// completeWithFallback walks the model chain, retrying the identical request
// against the next model on rate-limit-class errors only. Any other error
// aborts the chain immediately; exhausting it surfaces the last rate-limit
// error.
func (c *Client) completeWithFallback(
	ctx context.Context,
	models []string,
	messages []openai.ChatCompletionMessageParamUnion,
) (string, error) {
	logger := observability.FromContext(ctx)

	var lastErr error
	for i, model := range models {
		if i > 0 {
			logger.Warn("rate limited, retrying with fallback model",
				observability.String("fallback_model", model),
				observability.Error(lastErr))
		}

		out, err := c.completeOnce(ctx, model, messages)
		if err == nil {
			return out, nil
		}

		if !domain.IsRateLimit(err) {
			return "", err
		}
		lastErr = err
	}

	return "", lastErr
}

func (c *Client) completeOnce(
	ctx context.Context,
	model string,
	messages []openai.ChatCompletionMessageParamUnion,
) (string, error) {
	c.throttleDelay(ctx)

	key, err := c.settings.APIKey(ctx)
	if err != nil {
		return "", fmt.Errorf("read api key: %w", err)
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}

	var opts []option.RequestOption
	if key != "" {
		opts = append(opts, option.WithAPIKey(key))
	}

	resp, err := c.api.Chat.Completions.New(ctx, params, opts...)
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return "", &domain.APIError{Detail: errorDetail(apierr)}
		}
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.ErrInvalidResponse
	}

	return resp.Choices[0].Message.Content, nil
}

// errorDetail flattens a provider error body into the string the UI renders
// verbatim: HTTP status plus the provider's message and code when present.
func errorDetail(apierr *openai.Error) string {
	detail := fmt.Sprintf("HTTP %d", apierr.StatusCode)
	if apierr.Message != "" {
		detail += ": " + apierr.Message
	}
	if apierr.Code != "" {
		detail += " (" + apierr.Code + ")"
	}
	return detail
}

// throttleDelay sleeps for a random interval before each call to spread out
// bursts. Best-effort: cancellation skips the remainder of the delay without
// failing the request.
func (c *Client) throttleDelay(ctx context.Context) {
	if c.maxDelay <= 0 {
		return
	}

	delay := c.minDelay
	if span := c.maxDelay - c.minDelay; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
