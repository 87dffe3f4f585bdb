package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/studysnap/aicore/internal/observability"
	"github.com/studysnap/aicore/internal/tagformat"
)

const fallbackNoticeDefault = "The on-device model could not complete this request; cloud generation was used instead."

const (
	defaultQuestionCount  = 5
	maxQuestionCount      = 20
	defaultFlashcardCount = 10
	maxFlashcardCount     = 30
)

// Orchestrator builds prompts, routes them through provider selection with
// fallback, and parses completions into typed results. It owns no state
// across calls beyond the pending fallback notice.
type Orchestrator struct {
	selector *Selector
	cloud    CloudClient
	local    LocalClient
	settings Settings
	notices  *NoticeBoard
	cache    CompletionCache
	cacheTTL time.Duration
}

// NewOrchestrator creates a new request orchestrator. cache may be nil to
// disable completion caching.
func NewOrchestrator(
	selector *Selector,
	cloud CloudClient,
	local LocalClient,
	settings Settings,
	notices *NoticeBoard,
	cache CompletionCache,
	cacheTTL time.Duration,
) *Orchestrator {
	return &Orchestrator{
		selector: selector,
		cloud:    cloud,
		local:    local,
		settings: settings,
		notices:  notices,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// PerformRequest runs one generation through provider selection and fallback
// and returns the raw completion text.
func (o *Orchestrator) PerformRequest(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	out, _, err := o.perform(ctx, systemPrompt, userPrompt)
	return out, err
}

// perform selects a provider, attempts the request, and falls back to the
// cloud on any on-device failure. It reports which provider actually served
// the completion so a parsing retry can target the same one.
func (o *Orchestrator) perform(ctx context.Context, systemPrompt, userPrompt string) (string, ProviderKind, error) {
	sel, err := o.selector.Select(ctx)
	if err != nil {
		return "", "", err
	}

	ctx = observability.WithProvider(ctx, string(sel.Provider))
	logger := observability.FromContext(ctx)

	if sel.Provider == ProviderOnDevice {
		out, localErr := o.local.Complete(ctx, systemPrompt, userPrompt)
		if localErr == nil {
			return out, ProviderOnDevice, nil
		}

		logger.Warn("on-device generation failed, falling back to cloud",
			observability.Error(localErr))

		notice := sel.FallbackNotice
		if notice == "" {
			notice = fallbackNoticeDefault
		}
		o.notices.SetIfEmpty(notice)

		out, cloudErr := o.completeCloudText(ctx, systemPrompt, userPrompt)
		if cloudErr != nil {
			return "", ProviderCloud, cloudErr
		}
		return out, ProviderCloud, nil
	}

	o.notices.SetIfEmpty(sel.FallbackNotice)

	out, cloudErr := o.completeCloudText(ctx, systemPrompt, userPrompt)
	if cloudErr != nil {
		return "", ProviderCloud, cloudErr
	}
	return out, ProviderCloud, nil
}

// performConversation is perform for full message histories.
func (o *Orchestrator) performConversation(ctx context.Context, systemPrompt string, conversation []Message) (string, error) {
	sel, err := o.selector.Select(ctx)
	if err != nil {
		return "", err
	}

	ctx = observability.WithProvider(ctx, string(sel.Provider))

	if sel.Provider == ProviderOnDevice {
		out, localErr := o.local.CompleteChat(ctx, systemPrompt, conversation)
		if localErr == nil {
			return out, nil
		}

		observability.FromContext(ctx).Warn("on-device chat failed, falling back to cloud",
			observability.Error(localErr))

		notice := sel.FallbackNotice
		if notice == "" {
			notice = fallbackNoticeDefault
		}
		o.notices.SetIfEmpty(notice)

		return o.completeCloudChat(ctx, systemPrompt, conversation)
	}

	o.notices.SetIfEmpty(sel.FallbackNotice)
	return o.completeCloudChat(ctx, systemPrompt, conversation)
}

// completeWith targets a specific provider, bypassing selection. Used by the
// parsing retry so it hits the provider that produced the unparseable output.
func (o *Orchestrator) completeWith(ctx context.Context, kind ProviderKind, systemPrompt, userPrompt string) (string, error) {
	ctx = observability.WithProvider(ctx, string(kind))

	if kind == ProviderOnDevice {
		return o.local.Complete(ctx, systemPrompt, userPrompt)
	}
	return o.completeCloudText(ctx, systemPrompt, userPrompt)
}

func (o *Orchestrator) completeCloudText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	model, err := o.settings.TextModel(ctx)
	if err != nil {
		return "", fmt.Errorf("read text model: %w", err)
	}
	return o.cloud.Complete(observability.WithModel(ctx, model), model, systemPrompt, userPrompt)
}

func (o *Orchestrator) completeCloudChat(ctx context.Context, systemPrompt string, conversation []Message) (string, error) {
	model, err := o.settings.TextModel(ctx)
	if err != nil {
		return "", fmt.Errorf("read text model: %w", err)
	}
	return o.cloud.CompleteChat(observability.WithModel(ctx, model), model, systemPrompt, conversation)
}

// RequestWithParsingRetry runs one generation and parses it, retrying exactly
// once against the same provider when parsing yields nothing. Any error other
// than ErrParsingFailed propagates after a single provider invocation; a
// second parse failure surfaces the original parsing error.
func RequestWithParsingRetry[T any](
	ctx context.Context,
	o *Orchestrator,
	systemPrompt, userPrompt string,
	parse func(raw string) ([]T, error),
) ([]T, error) {
	raw, used, err := o.perform(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	records, parseErr := parse(raw)
	if parseErr == nil {
		return records, nil
	}
	if !errors.Is(parseErr, ErrParsingFailed) {
		return nil, parseErr
	}

	observability.FromContext(ctx).Warn("completion did not parse, retrying once",
		observability.String("provider", string(used)))

	raw, err = o.completeWith(ctx, used, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	if records, retryErr := parse(raw); retryErr == nil {
		return records, nil
	}

	return nil, parseErr
}

// performCached consults the completion cache before generating. Only
// deterministic generation kinds route through here.
func (o *Orchestrator) performCached(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if o.cache == nil {
		out, _, err := o.perform(ctx, systemPrompt, userPrompt)
		return out, err
	}

	logger := observability.FromContext(ctx)
	key := o.completionKey(ctx, systemPrompt, userPrompt)

	cached, err := o.cache.Get(ctx, key)
	if err == nil {
		logger.Info("completion cache hit")
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logger.Warn("completion cache get failed, continuing without cache",
			observability.Error(err))
	}

	out, _, err := o.perform(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}

	if setErr := o.cache.Set(ctx, key, out, o.cacheTTL); setErr != nil {
		logger.Warn("failed to store completion in cache",
			observability.Error(setErr))
	}

	return out, nil
}

func (o *Orchestrator) completionKey(ctx context.Context, systemPrompt, userPrompt string) string {
	model, _ := o.settings.TextModel(ctx)
	sum := sha256.Sum256([]byte(model + "\x00" + systemPrompt + "\x00" + userPrompt))
	return "completion:" + hex.EncodeToString(sum[:])
}

// GenerateSummary produces a revision summary of the given study material.
func (o *Orchestrator) GenerateSummary(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", errors.New("content cannot be empty")
	}
	return o.performCached(ctx, summarySystem, buildSummaryPrompt(content))
}

// GenerateQuestions produces multiple-choice questions from study material.
func (o *Orchestrator) GenerateQuestions(ctx context.Context, content string, count int) ([]ParsedQuestion, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("content cannot be empty")
	}
	count = clampCount(count, defaultQuestionCount, maxQuestionCount)
	return RequestWithParsingRetry(ctx, o, questionsSystem, buildQuestionsPrompt(content, count), parseQuestionBatch)
}

// GenerateFlashcards produces flashcards from study material.
func (o *Orchestrator) GenerateFlashcards(ctx context.Context, content string, count int) ([]ParsedFlashcard, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("content cannot be empty")
	}
	count = clampCount(count, defaultFlashcardCount, maxFlashcardCount)
	return RequestWithParsingRetry(ctx, o, flashcardsSystem, buildFlashcardsPrompt(content, count), flashcardBatchParser(count))
}

// GenerateTopicGuide produces a study guide for a named topic.
func (o *Orchestrator) GenerateTopicGuide(ctx context.Context, topic string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", errors.New("topic cannot be empty")
	}
	return o.performCached(ctx, topicGuideSystem, buildTopicGuidePrompt(topic))
}

// GenerateTopicQuestions produces questions for a named topic without source material.
func (o *Orchestrator) GenerateTopicQuestions(ctx context.Context, topic string, count int) ([]ParsedQuestion, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, errors.New("topic cannot be empty")
	}
	count = clampCount(count, defaultQuestionCount, maxQuestionCount)
	return RequestWithParsingRetry(ctx, o, questionsSystem, buildTopicQuestionsPrompt(topic, count), parseQuestionBatch)
}

// GenerateTopicFlashcards produces flashcards for a named topic without source material.
func (o *Orchestrator) GenerateTopicFlashcards(ctx context.Context, topic string, count int) ([]ParsedFlashcard, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, errors.New("topic cannot be empty")
	}
	count = clampCount(count, defaultFlashcardCount, maxFlashcardCount)
	return RequestWithParsingRetry(ctx, o, flashcardsSystem, buildTopicFlashcardsPrompt(topic, count), flashcardBatchParser(count))
}

// PerformChat runs one tutor turn over the full conversation history, with
// the output-tag template for the selected response format injected into the
// system prompt.
func (o *Orchestrator) PerformChat(ctx context.Context, conversation []Message, format TutorResponseFormat) (string, error) {
	if len(conversation) == 0 {
		return "", errors.New("conversation cannot be empty")
	}
	return o.performConversation(ctx, tutorSystemPrompt(format), conversation)
}

// PerformVisionChat analyzes a base64-encoded image together with a text
// prompt. Vision requests always use the cloud provider.
func (o *Orchestrator) PerformVisionChat(ctx context.Context, prompt, imageBase64 string) (string, error) {
	if imageBase64 == "" {
		return "", errors.New("image cannot be empty")
	}

	model, err := o.settings.VisionModel(ctx)
	if err != nil {
		return "", fmt.Errorf("read vision model: %w", err)
	}

	ctx = observability.WithProvider(ctx, string(ProviderCloud))
	ctx = observability.WithModel(ctx, model)
	return o.cloud.CompleteVision(ctx, model, visionSystem, buildVisionPrompt(prompt), imageBase64)
}

// ConvertToFlashcards turns free-form notes into flashcards.
func (o *Orchestrator) ConvertToFlashcards(ctx context.Context, text string) ([]ParsedFlashcard, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text cannot be empty")
	}
	return RequestWithParsingRetry(ctx, o, flashcardsSystem, buildConvertPrompt(text), flashcardBatchParser(0))
}

// PopFallbackNotice returns the pending fallback notice and clears it.
func (o *Orchestrator) PopFallbackNotice() string {
	return o.notices.Pop()
}

// ClearFallbackNotice drops the pending fallback notice.
func (o *Orchestrator) ClearFallbackNotice() {
	o.notices.Clear()
}

// PreviewFallbackNotice reports the notice that the current preference and
// availability would produce, without performing a request or storing it.
func (o *Orchestrator) PreviewFallbackNotice(ctx context.Context) (string, error) {
	sel, err := o.selector.Select(ctx)
	if err != nil {
		return "", err
	}
	return sel.FallbackNotice, nil
}

func parseQuestionBatch(raw string) ([]ParsedQuestion, error) {
	questions := tagformat.ParseQuestions(raw)
	if len(questions) == 0 {
		return nil, ErrParsingFailed
	}
	return questions, nil
}

// flashcardBatchParser builds a parse func that caps the batch at limit cards.
func flashcardBatchParser(limit int) func(raw string) ([]ParsedFlashcard, error) {
	return func(raw string) ([]ParsedFlashcard, error) {
		cards := tagformat.ParseFlashcards(raw)
		if len(cards) == 0 {
			return nil, ErrParsingFailed
		}
		return tagformat.LimitFlashcards(cards, limit), nil
	}
}

func clampCount(count, fallback, max int) int {
	if count <= 0 {
		return fallback
	}
	if count > max {
		return max
	}
	return count
}
