// Package local provides the on-device generation backend, backed by an
// OpenAI-compatible model runtime on the local machine. There is no model
// fallback and no rate limiting; when the runtime is not enabled or not
// configured, every call fails with a descriptive error and the orchestrator
// falls back to the cloud.
package local

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/studysnap/aicore/internal/domain"
)

// Client implements domain.LocalClient.
type Client struct {
	api openai.Client
	cfg Config

	// Chat continuations share one process-scoped session: system
	// instructions are bound when the session starts, and each turn appends
	// to its history. The lock also serializes runtime access, since a local
	// model serves one generation at a time anyway.
	mu      sync.Mutex
	session *session
}

type session struct {
	systemPrompt string
	messages     []openai.ChatCompletionMessageParamUnion
}

// NewClient creates a new local runtime client (DI constructor).
func NewClient(cfg *Config) *Client {
	opts := []option.RequestOption{
		option.WithMaxRetries(0),
		// The runtime authenticates by being local; the SDK just wants a key.
		option.WithAPIKey("local"),
	}

	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(cfg.Timeout)*time.Second))
	}

	return &Client{
		api: openai.NewClient(opts...),
		cfg: *cfg,
	}
}

// Available reports whether the local model can serve requests.
func (c *Client) Available(_ context.Context) (bool, string) {
	if !c.cfg.Enabled {
		return false, "on-device generation is turned off in settings"
	}
	if c.cfg.BaseURL == "" || c.cfg.Model == "" {
		return false, "no local model runtime is configured on this device"
	}
	return true, ""
}

// Complete sends one system/user prompt pair to the local runtime.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if ok, reason := c.Available(ctx); !ok {
		return "", fmt.Errorf("%w: on-device model unavailable: %s", domain.ErrGenerationFailed, reason)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.send(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage(userPrompt),
	})
}

// CompleteChat continues the process-scoped session. Only the final user turn
// is consumed from the conversation; earlier turns already live in the
// session history. A changed system prompt starts a fresh session.
func (c *Client) CompleteChat(ctx context.Context, systemPrompt string, conversation []domain.Message) (string, error) {
	if ok, reason := c.Available(ctx); !ok {
		return "", fmt.Errorf("%w: on-device model unavailable: %s", domain.ErrGenerationFailed, reason)
	}

	userTurn := finalUserTurn(conversation)
	if userTurn == "" {
		return "", fmt.Errorf("%w: conversation has no user turn", domain.ErrGenerationFailed)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil || c.session.systemPrompt != systemPrompt {
		c.session = &session{
			systemPrompt: systemPrompt,
			messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemPrompt),
			},
		}
	}

	c.session.messages = append(c.session.messages, openai.UserMessage(userTurn))

	reply, err := c.send(ctx, c.session.messages)
	if err != nil {
		// Drop the unanswered turn so a retry does not duplicate it.
		c.session.messages = c.session.messages[:len(c.session.messages)-1]
		return "", err
	}

	c.session.messages = append(c.session.messages, openai.AssistantMessage(reply))
	return reply, nil
}

func (c *Client) send(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.cfg.Model),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("%w: local model request failed: %v", domain.ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.ErrInvalidResponse
	}

	return resp.Choices[0].Message.Content, nil
}

func finalUserTurn(conversation []domain.Message) string {
	for i := len(conversation) - 1; i >= 0; i-- {
		if conversation[i].Role == domain.RoleUser {
			return conversation[i].Content
		}
	}
	return ""
}
