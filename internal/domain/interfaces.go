package domain

import (
	"context"
	"time"
)

// CloudClient is the hosted chat-completion backend. Implementations apply
// their own model-fallback policy on rate-limit-class errors.
type CloudClient interface {
	// Complete sends one system/user prompt pair and returns the completion text.
	Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)

	// CompleteChat sends the system prompt followed by the full message history.
	CompleteChat(ctx context.Context, model, systemPrompt string, conversation []Message) (string, error)

	// CompleteVision sends a base64-encoded image together with a text prompt.
	CompleteVision(ctx context.Context, model, systemPrompt, userPrompt, imageBase64 string) (string, error)
}

// LocalClient is the on-device model backend. It has no model fallback and no
// rate limiting; any failure makes the orchestrator fall back to the cloud.
type LocalClient interface {
	// Complete sends one system/user prompt pair to the local runtime.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// CompleteChat continues a process-scoped session. System instructions are
	// bound when the session is created; only the final user turn is consumed
	// from the conversation on continuation.
	CompleteChat(ctx context.Context, systemPrompt string, conversation []Message) (string, error)

	// Available reports whether the local model can serve requests, with a
	// human-readable reason when it cannot.
	Available(ctx context.Context) (bool, string)
}

// Settings is the external settings collaborator. The core never persists
// these values itself.
type Settings interface {
	Preference(ctx context.Context) (ProviderPreference, error)
	SetPreference(ctx context.Context, pref ProviderPreference) error

	APIKey(ctx context.Context) (string, error)
	SetAPIKey(ctx context.Context, key string) error

	TextModel(ctx context.Context) (string, error)
	SetTextModel(ctx context.Context, model string) error

	VisionModel(ctx context.Context) (string, error)
	SetVisionModel(ctx context.Context, model string) error
}

// CompletionCache stores completion text by content address. A nil cache
// disables caching entirely.
type CompletionCache interface {
	// Get retrieves a cached completion, or ErrCacheMiss.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a completion under the given key.
	Set(ctx context.Context, key, completion string, ttl time.Duration) error
}
