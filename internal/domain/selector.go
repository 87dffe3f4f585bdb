package domain

import (
	"context"
	"fmt"
)

const defaultUnavailableReason = "the on-device model is not available on this device"

// Selector chooses which provider serves a request. Selection is a pure
// function of the current user preference and on-device availability; it has
// no side effects and is safe to call from concurrent requests.
type Selector struct {
	settings Settings
	local    LocalClient
}

// NewSelector creates a new provider selector (DI constructor).
func NewSelector(settings Settings, local LocalClient) *Selector {
	return &Selector{
		settings: settings,
		local:    local,
	}
}

// Select computes a fresh ProviderSelection for one request.
func (s *Selector) Select(ctx context.Context) (ProviderSelection, error) {
	pref, err := s.settings.Preference(ctx)
	if err != nil {
		return ProviderSelection{}, fmt.Errorf("read provider preference: %w", err)
	}

	if pref == PreferenceCloudOnly {
		return ProviderSelection{Provider: ProviderCloud}, nil
	}

	ok, reason := s.local.Available(ctx)
	if ok {
		return ProviderSelection{Provider: ProviderOnDevice}, nil
	}

	if reason == "" {
		reason = defaultUnavailableReason
	}

	return ProviderSelection{
		Provider:       ProviderCloud,
		FallbackNotice: "Using cloud generation: " + reason,
	}, nil
}
