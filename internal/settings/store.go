// Package settings provides the in-memory implementation of the settings
// collaborator. The app's UI owns durable persistence of these values; this
// store just holds the current ones, seeded from the environment and mutable
// at runtime through the settings endpoint.
package settings

import (
	"context"
	"sync"

	"github.com/studysnap/aicore/internal/domain"
)

// Store implements domain.Settings with mutex-guarded fields.
type Store struct {
	mu          sync.RWMutex
	preference  domain.ProviderPreference
	apiKey      string
	textModel   string
	visionModel string
}

// NewStore creates a settings store seeded with defaults (DI constructor).
func NewStore(defaults Defaults) *Store {
	pref := domain.ProviderPreference(defaults.Preference)
	if pref != domain.PreferenceCloudOnly {
		pref = domain.PreferenceAutomatic
	}

	return &Store{
		preference:  pref,
		apiKey:      defaults.APIKey,
		textModel:   defaults.TextModel,
		visionModel: defaults.VisionModel,
	}
}

// Defaults seeds a new store.
type Defaults struct {
	Preference  string
	APIKey      string
	TextModel   string
	VisionModel string
}

// Preference returns the current provider preference.
func (s *Store) Preference(_ context.Context) (domain.ProviderPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preference, nil
}

// SetPreference updates the provider preference.
func (s *Store) SetPreference(_ context.Context, pref domain.ProviderPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preference = pref
	return nil
}

// APIKey returns the user-supplied cloud API key.
func (s *Store) APIKey(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey, nil
}

// SetAPIKey updates the cloud API key.
func (s *Store) SetAPIKey(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
	return nil
}

// TextModel returns the model used for text generation.
func (s *Store) TextModel(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.textModel, nil
}

// SetTextModel updates the text generation model.
func (s *Store) SetTextModel(_ context.Context, model string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textModel = model
	return nil
}

// VisionModel returns the model used for image analysis.
func (s *Store) VisionModel(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visionModel, nil
}

// SetVisionModel updates the image analysis model.
func (s *Store) SetVisionModel(_ context.Context, model string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visionModel = model
	return nil
}
