package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studysnap/aicore/internal/domain"
)

func TestNewStore_SeedsFromDefaults(t *testing.T) {
	store := NewStore(Defaults{
		Preference:  "cloud-only",
		APIKey:      "gsk-test",
		TextModel:   "openai/gpt-oss-20b",
		VisionModel: "meta-llama/llama-4-scout-17b-16e-instruct",
	})

	ctx := context.Background()

	pref, err := store.Preference(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.PreferenceCloudOnly, pref)

	key, err := store.APIKey(ctx)
	require.NoError(t, err)
	require.Equal(t, "gsk-test", key)
}

func TestNewStore_UnknownPreferenceFallsBackToAutomatic(t *testing.T) {
	store := NewStore(Defaults{Preference: "whatever"})

	pref, err := store.Preference(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.PreferenceAutomatic, pref)
}

func TestStore_Updates(t *testing.T) {
	store := NewStore(Defaults{Preference: "automatic", TextModel: "old"})
	ctx := context.Background()

	require.NoError(t, store.SetPreference(ctx, domain.PreferenceCloudOnly))
	require.NoError(t, store.SetTextModel(ctx, "new"))
	require.NoError(t, store.SetVisionModel(ctx, "vision"))
	require.NoError(t, store.SetAPIKey(ctx, "key"))

	pref, _ := store.Preference(ctx)
	require.Equal(t, domain.PreferenceCloudOnly, pref)

	model, _ := store.TextModel(ctx)
	require.Equal(t, "new", model)

	vision, _ := store.VisionModel(ctx)
	require.Equal(t, "vision", vision)

	key, _ := store.APIKey(ctx)
	require.Equal(t, "key", key)
}
