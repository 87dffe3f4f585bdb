package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stubSettings implements Settings with plain fields.
type stubSettings struct {
	pref        ProviderPreference
	apiKey      string
	textModel   string
	visionModel string
}

func (s *stubSettings) Preference(context.Context) (ProviderPreference, error) { return s.pref, nil }
func (s *stubSettings) SetPreference(_ context.Context, p ProviderPreference) error {
	s.pref = p
	return nil
}
func (s *stubSettings) APIKey(context.Context) (string, error) { return s.apiKey, nil }
func (s *stubSettings) SetAPIKey(_ context.Context, k string) error {
	s.apiKey = k
	return nil
}
func (s *stubSettings) TextModel(context.Context) (string, error) { return s.textModel, nil }
func (s *stubSettings) SetTextModel(_ context.Context, m string) error {
	s.textModel = m
	return nil
}
func (s *stubSettings) VisionModel(context.Context) (string, error) { return s.visionModel, nil }
func (s *stubSettings) SetVisionModel(_ context.Context, m string) error {
	s.visionModel = m
	return nil
}

// stubLocal implements LocalClient.
type stubLocal struct {
	available bool
	reason    string

	completeFn func(systemPrompt, userPrompt string) (string, error)
	calls      int
}

func (l *stubLocal) Available(context.Context) (bool, string) { return l.available, l.reason }

func (l *stubLocal) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	l.calls++
	return l.completeFn(systemPrompt, userPrompt)
}

func (l *stubLocal) CompleteChat(_ context.Context, systemPrompt string, conversation []Message) (string, error) {
	l.calls++
	last := conversation[len(conversation)-1]
	return l.completeFn(systemPrompt, last.Content)
}

// stubCloud implements CloudClient.
type stubCloud struct {
	completeFn func(model, systemPrompt, userPrompt string) (string, error)
	calls      int
}

func (c *stubCloud) Complete(_ context.Context, model, systemPrompt, userPrompt string) (string, error) {
	c.calls++
	return c.completeFn(model, systemPrompt, userPrompt)
}

func (c *stubCloud) CompleteChat(_ context.Context, model, systemPrompt string, conversation []Message) (string, error) {
	c.calls++
	last := conversation[len(conversation)-1]
	return c.completeFn(model, systemPrompt, last.Content)
}

func (c *stubCloud) CompleteVision(_ context.Context, model, systemPrompt, userPrompt, _ string) (string, error) {
	c.calls++
	return c.completeFn(model, systemPrompt, userPrompt)
}

// stubCache implements CompletionCache in a map.
type stubCache struct {
	entries map[string]string
	gets    int
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string]string{}}
}

func (c *stubCache) Get(_ context.Context, key string) (string, error) {
	c.gets++
	if v, ok := c.entries[key]; ok {
		return v, nil
	}
	return "", ErrCacheMiss
}

func (c *stubCache) Set(_ context.Context, key, completion string, _ time.Duration) error {
	c.sets++
	c.entries[key] = completion
	return nil
}

func TestSelector_CloudOnlySkipsAvailabilityCheck(t *testing.T) {
	selector := NewSelector(
		&stubSettings{pref: PreferenceCloudOnly},
		&stubLocal{available: true},
	)

	sel, err := selector.Select(context.Background())
	require.NoError(t, err)
	require.Equal(t, ProviderCloud, sel.Provider)
	require.Empty(t, sel.FallbackNotice)
}

func TestSelector_AutomaticPrefersOnDevice(t *testing.T) {
	selector := NewSelector(
		&stubSettings{pref: PreferenceAutomatic},
		&stubLocal{available: true},
	)

	sel, err := selector.Select(context.Background())
	require.NoError(t, err)
	require.Equal(t, ProviderOnDevice, sel.Provider)
	require.Empty(t, sel.FallbackNotice)
}

func TestSelector_AutomaticUnavailableFallsBackWithNotice(t *testing.T) {
	selector := NewSelector(
		&stubSettings{pref: PreferenceAutomatic},
		&stubLocal{available: false, reason: "model not downloaded"},
	)

	sel, err := selector.Select(context.Background())
	require.NoError(t, err)
	require.Equal(t, ProviderCloud, sel.Provider)
	require.Equal(t, "Using cloud generation: model not downloaded", sel.FallbackNotice)
}

func TestSelector_MissingReasonGetsDefault(t *testing.T) {
	selector := NewSelector(
		&stubSettings{pref: PreferenceAutomatic},
		&stubLocal{available: false},
	)

	sel, err := selector.Select(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Using cloud generation: "+defaultUnavailableReason, sel.FallbackNotice)
}
