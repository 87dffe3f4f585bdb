package domain

import "github.com/studysnap/aicore/internal/tagformat"

// ProviderKind identifies one of the two interchangeable generation backends.
type ProviderKind string

const (
	// ProviderOnDevice is the local model runtime on the user's machine.
	ProviderOnDevice ProviderKind = "on-device"

	// ProviderCloud is the hosted chat-completion API.
	ProviderCloud ProviderKind = "cloud"
)

// ProviderPreference is the user-facing provider policy.
type ProviderPreference string

const (
	// PreferenceAutomatic prefers the on-device model when it is available.
	PreferenceAutomatic ProviderPreference = "automatic"

	// PreferenceCloudOnly always uses the cloud API.
	PreferenceCloudOnly ProviderPreference = "cloud-only"
)

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// GenerationRequest carries the prompts for a single generation call.
// Either UserPrompt or Conversation is set, never both.
type GenerationRequest struct {
	SystemPrompt string    `json:"system_prompt"`
	UserPrompt   string    `json:"user_prompt,omitempty"`
	Conversation []Message `json:"conversation,omitempty"`
}

// ProviderSelection is the outcome of one provider-selection pass. It is
// computed fresh per call and never persisted.
type ProviderSelection struct {
	Provider ProviderKind

	// FallbackNotice is a human-readable explanation for why the preferred
	// provider could not be used. Empty when no fallback happened.
	FallbackNotice string
}

// ParsedQuestion is a multiple-choice question recovered from model output.
// After post-processing Options always has exactly four entries, one of which
// equals Answer after whitespace normalization.
type ParsedQuestion = tagformat.Question

// ParsedFlashcard is a front/back study card recovered from model output.
// Both sides are non-empty after trimming.
type ParsedFlashcard = tagformat.Flashcard

// QuickPrompt is one entry of the quick-prompt catalog shown while the user
// types a tutor question.
type QuickPrompt struct {
	ID       string              `json:"id"`
	Label    string              `json:"label"`
	Icon     string              `json:"icon"`
	Template string              `json:"template"`
	Format   TutorResponseFormat `json:"format"`
}
