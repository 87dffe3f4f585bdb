package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/studysnap/aicore/internal/domain"
	"github.com/studysnap/aicore/internal/observability"
	"github.com/studysnap/aicore/internal/quickprompt"
)

// Service is the generation surface the HTTP layer exposes. It is implemented
// by domain.Orchestrator.
type Service interface {
	GenerateSummary(ctx context.Context, content string) (string, error)
	GenerateQuestions(ctx context.Context, content string, count int) ([]domain.ParsedQuestion, error)
	GenerateFlashcards(ctx context.Context, content string, count int) ([]domain.ParsedFlashcard, error)
	GenerateTopicGuide(ctx context.Context, topic string) (string, error)
	GenerateTopicQuestions(ctx context.Context, topic string, count int) ([]domain.ParsedQuestion, error)
	GenerateTopicFlashcards(ctx context.Context, topic string, count int) ([]domain.ParsedFlashcard, error)
	PerformChat(ctx context.Context, conversation []domain.Message, format domain.TutorResponseFormat) (string, error)
	PerformVisionChat(ctx context.Context, prompt, imageBase64 string) (string, error)
	ConvertToFlashcards(ctx context.Context, text string) ([]domain.ParsedFlashcard, error)
	PopFallbackNotice() string
	ClearFallbackNotice()
	PreviewFallbackNotice(ctx context.Context) (string, error)
}

// Handler handles HTTP requests.
type Handler struct {
	service  Service
	settings domain.Settings
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(service Service, settings domain.Settings) *Handler {
	return &Handler{
		service:  service,
		settings: settings,
	}
}

type contentRequest struct {
	Content string `json:"content"`
	Count   int    `json:"count,omitempty"`
}

type topicRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count,omitempty"`
}

// HandleSummary processes summary generation requests.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req contentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	summary, err := h.service.GenerateSummary(ctx, req.Content)
	if err != nil {
		writeServiceError(ctx, w, "summary generation failed", err)
		return
	}

	writeJSON(ctx, w, map[string]string{"summary": summary})
}

// HandleQuestions processes question generation requests.
func (h *Handler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req contentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	questions, err := h.service.GenerateQuestions(ctx, req.Content, req.Count)
	if err != nil {
		writeServiceError(ctx, w, "question generation failed", err)
		return
	}

	writeJSON(ctx, w, map[string]any{"questions": questions})
}

// HandleFlashcards processes flashcard generation requests.
func (h *Handler) HandleFlashcards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req contentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	cards, err := h.service.GenerateFlashcards(ctx, req.Content, req.Count)
	if err != nil {
		writeServiceError(ctx, w, "flashcard generation failed", err)
		return
	}

	writeJSON(ctx, w, map[string]any{"flashcards": cards})
}

// HandleTopicGuide processes topic study guide requests.
func (h *Handler) HandleTopicGuide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req topicRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Topic == "" {
		http.Error(w, "topic is required", http.StatusBadRequest)
		return
	}

	guide, err := h.service.GenerateTopicGuide(ctx, req.Topic)
	if err != nil {
		writeServiceError(ctx, w, "topic guide generation failed", err)
		return
	}

	writeJSON(ctx, w, map[string]string{"guide": guide})
}

// HandleTopicQuestions processes topic question requests.
func (h *Handler) HandleTopicQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req topicRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Topic == "" {
		http.Error(w, "topic is required", http.StatusBadRequest)
		return
	}

	questions, err := h.service.GenerateTopicQuestions(ctx, req.Topic, req.Count)
	if err != nil {
		writeServiceError(ctx, w, "topic question generation failed", err)
		return
	}

	writeJSON(ctx, w, map[string]any{"questions": questions})
}

// HandleTopicFlashcards processes topic flashcard requests.
func (h *Handler) HandleTopicFlashcards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req topicRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Topic == "" {
		http.Error(w, "topic is required", http.StatusBadRequest)
		return
	}

	cards, err := h.service.GenerateTopicFlashcards(ctx, req.Topic, req.Count)
	if err != nil {
		writeServiceError(ctx, w, "topic flashcard generation failed", err)
		return
	}

	writeJSON(ctx, w, map[string]any{"flashcards": cards})
}

// HandleChat processes tutor chat requests.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Messages []domain.Message `json:"messages"`
		Format   string           `json:"format,omitempty"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Messages) == 0 {
		http.Error(w, "messages are required", http.StatusBadRequest)
		return
	}

	format, err := domain.ParseTutorResponseFormat(req.Format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reply, err := h.service.PerformChat(ctx, req.Messages, format)
	if err != nil {
		writeServiceError(ctx, w, "chat failed", err)
		return
	}

	writeJSON(ctx, w, map[string]string{"reply": reply})
}

// HandleVision processes image analysis requests.
func (h *Handler) HandleVision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Prompt      string `json:"prompt,omitempty"`
		ImageBase64 string `json:"image_base64"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ImageBase64 == "" {
		http.Error(w, "image_base64 is required", http.StatusBadRequest)
		return
	}

	reply, err := h.service.PerformVisionChat(ctx, req.Prompt, req.ImageBase64)
	if err != nil {
		writeServiceError(ctx, w, "image analysis failed", err)
		return
	}

	writeJSON(ctx, w, map[string]string{"reply": reply})
}

// HandleConvert processes note-to-flashcard conversion requests.
func (h *Handler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	cards, err := h.service.ConvertToFlashcards(ctx, req.Text)
	if err != nil {
		writeServiceError(ctx, w, "conversion failed", err)
		return
	}

	writeJSON(ctx, w, map[string]any{"flashcards": cards})
}

// HandleQuickPrompts returns the quick prompt list for the tutor input bar.
// The partial input goes in the "input" query parameter; recent user turns go
// in repeated "history" parameters, in chronological order.
func (h *Handler) HandleQuickPrompts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	prompts := quickprompt.Select(query.Get("input"), query["history"])
	writeJSON(r.Context(), w, map[string]any{"prompts": prompts})
}

// HandleNoticePop returns the pending fallback notice and clears it.
func (h *Handler) HandleNoticePop(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, map[string]string{"notice": h.service.PopFallbackNotice()})
}

// HandleNoticeClear drops the pending fallback notice.
func (h *Handler) HandleNoticeClear(w http.ResponseWriter, r *http.Request) {
	h.service.ClearFallbackNotice()
	w.WriteHeader(http.StatusNoContent)
}

// HandleNoticePreview reports the notice the current settings would produce,
// without generating anything.
func (h *Handler) HandleNoticePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notice, err := h.service.PreviewFallbackNotice(ctx)
	if err != nil {
		writeServiceError(ctx, w, "notice preview failed", err)
		return
	}

	writeJSON(ctx, w, map[string]string{"notice": notice})
}

type settingsResponse struct {
	Preference  string `json:"preference"`
	TextModel   string `json:"text_model"`
	VisionModel string `json:"vision_model"`
	HasAPIKey   bool   `json:"has_api_key"`
}

// HandleGetSettings returns the current generation settings. The API key
// itself never leaves the service.
func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pref, err := h.settings.Preference(ctx)
	if err != nil {
		writeServiceError(ctx, w, "read settings failed", err)
		return
	}
	textModel, err := h.settings.TextModel(ctx)
	if err != nil {
		writeServiceError(ctx, w, "read settings failed", err)
		return
	}
	visionModel, err := h.settings.VisionModel(ctx)
	if err != nil {
		writeServiceError(ctx, w, "read settings failed", err)
		return
	}
	apiKey, err := h.settings.APIKey(ctx)
	if err != nil {
		writeServiceError(ctx, w, "read settings failed", err)
		return
	}

	writeJSON(ctx, w, settingsResponse{
		Preference:  string(pref),
		TextModel:   textModel,
		VisionModel: visionModel,
		HasAPIKey:   apiKey != "",
	})
}

// HandleUpdateSettings updates generation settings. Absent fields keep their
// current values.
func (h *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Preference  *string `json:"preference"`
		APIKey      *string `json:"api_key"`
		TextModel   *string `json:"text_model"`
		VisionModel *string `json:"vision_model"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Preference != nil {
		pref := domain.ProviderPreference(*req.Preference)
		if pref != domain.PreferenceAutomatic && pref != domain.PreferenceCloudOnly {
			http.Error(w, fmt.Sprintf("unknown preference %q", *req.Preference), http.StatusBadRequest)
			return
		}
		if err := h.settings.SetPreference(ctx, pref); err != nil {
			writeServiceError(ctx, w, "update settings failed", err)
			return
		}
	}
	if req.APIKey != nil {
		if err := h.settings.SetAPIKey(ctx, *req.APIKey); err != nil {
			writeServiceError(ctx, w, "update settings failed", err)
			return
		}
	}
	if req.TextModel != nil {
		if err := h.settings.SetTextModel(ctx, *req.TextModel); err != nil {
			writeServiceError(ctx, w, "update settings failed", err)
			return
		}
	}
	if req.VisionModel != nil {
		if err := h.settings.SetVisionModel(ctx, *req.VisionModel); err != nil {
			writeServiceError(ctx, w, "update settings failed", err)
			return
		}
	}

	h.HandleGetSettings(w, r)
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(ctx context.Context, w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		observability.FromContext(ctx).Error("failed to encode response", zap.Error(err))
	}
}

func writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	observability.FromContext(ctx).Error(msg, zap.Error(err))
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
