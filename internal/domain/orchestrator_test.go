package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const parseableQuestions = `[QUESTION]
What is the capital of France?
[ANSWER]
Paris
[OPTION]
London
[OPTION]
Berlin
[END]`

const parseableFlashcards = `[FRONT]
Osmosis
[BACK]
Diffusion of water across a membrane
[END]`

func newTestOrchestrator(settings Settings, cloud CloudClient, local LocalClient, cache CompletionCache) *Orchestrator {
	return NewOrchestrator(
		NewSelector(settings, local),
		cloud, local, settings,
		NewNoticeBoard(),
		cache, 0,
	)
}

func TestPerformRequest_OnDeviceSuccessSkipsCloud(t *testing.T) {
	local := &stubLocal{
		available:  true,
		completeFn: func(_, _ string) (string, error) { return "local output", nil },
	}
	cloud := &stubCloud{
		completeFn: func(_, _, _ string) (string, error) { return "cloud output", nil },
	}
	o := newTestOrchestrator(&stubSettings{pref: PreferenceAutomatic, textModel: "m"}, cloud, local, nil)

	out, err := o.PerformRequest(context.Background(), "sys", "user")
	require.NoError(t, err)
	require.Equal(t, "local output", out)
	require.Equal(t, 1, local.calls)
	require.Zero(t, cloud.calls)
	require.Empty(t, o.PopFallbackNotice())
}

func TestPerformRequest_OnDeviceFailureFallsBackAndSetsNotice(t *testing.T) {
	local := &stubLocal{
		available:  true,
		completeFn: func(_, _ string) (string, error) { return "", errors.New("runtime crashed") },
	}
	cloud := &stubCloud{
		completeFn: func(_, _, _ string) (string, error) { return "cloud output", nil },
	}
	o := newTestOrchestrator(&stubSettings{pref: PreferenceAutomatic, textModel: "m"}, cloud, local, nil)

	out, err := o.PerformRequest(context.Background(), "sys", "user")
	require.NoError(t, err)
	require.Equal(t, "cloud output", out)
	require.Equal(t, 1, local.calls)
	require.Equal(t, 1, cloud.calls)

	require.Equal(t, fallbackNoticeDefault, o.PopFallbackNotice())
	require.Empty(t, o.PopFallbackNotice())
}

func TestPerformRequest_UnavailableOnDeviceSetsSelectionNotice(t *testing.T) {
	local := &stubLocal{available: false, reason: "model not downloaded"}
	cloud := &stubCloud{
		completeFn: func(_, _, _ string) (string, error) { return "cloud output", nil },
	}
	o := newTestOrchestrator(&stubSettings{pref: PreferenceAutomatic, textModel: "m"}, cloud, local, nil)

	_, err := o.PerformRequest(context.Background(), "sys", "user")
	require.NoError(t, err)
	require.Equal(t, "Using cloud generation: model not downloaded", o.PopFallbackNotice())
}

func TestPerformRequest_CloudOnlyNeverTouchesLocal(t *testing.T) {
	local := &stubLocal{
		available:  true,
		completeFn: func(_, _ string) (string, error) { return "local output", nil },
	}
	cloud := &stubCloud{
		completeFn: func(_, _, _ string) (string, error) { return "cloud output", nil },
	}
	o := newTestOrchestrator(&stubSettings{pref: PreferenceCloudOnly, textModel: "m"}, cloud, local, nil)

	out, err := o.PerformRequest(context.Background(), "sys", "user")
	require.NoError(t, err)
	require.Equal(t, "cloud output", out)
	require.Zero(t, local.calls)
	require.Equal(t, 1, cloud.calls)
	require.Empty(t, o.PopFallbackNotice())
}

func TestPerformRequest_FirstNoticeSurvivesLaterFallbacks(t *testing.T) {
	local := &stubLocal{available: false, reason: "first reason"}
	cloud := &stubCloud{
		completeFn: func(_, _, _ string) (string, error) { return "out", nil },
	}
	o := newTestOrchestrator(&stubSettings{pref: PreferenceAutomatic, textModel: "m"}, cloud, local, nil)

	_, err := o.PerformRequest(context.Background(), "sys", "user")
	require.NoError(t, err)

	local.reason = "second reason"
	_, err = o.PerformRequest(context.Background(), "sys", "user")
	require.NoError(t, err)

	require.Equal(t, "Using cloud generation: first reason", o.PopFallbackNotice())
}

func TestGenerateQuestions_RetriesOnceOnUnparseableOutput(t *testing.T) {
	outputs := []string{"I'd be happy to help!", parseableQuestions}
	cloud := &stubCloud{}
	cloud.completeFn = func(_, _, _ string) (string, error) {
		out := outputs[cloud.calls-1]
		return out, nil
	}
	o := newTestOrchestrator(&stubSettings{pref: PreferenceCloudOnly, textModel: "m"}, cloud, &stubLocal{}, nil)

	questions, err := o.GenerateQuestions(context.Background(), "some notes", 5)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, 2, cloud.calls)
}

func TestGenerateQuestions_SecondParseFailureSurfacesParsingError(t *testing.T) {
	cloud := &stubCloud{
		completeFn: func(_, _, _ string) (string, error) { return "still just chatting", nil },
	}
	o := newTestOrchestrator(&stubSettings{pref: PreferenceCloudOnly, textModel: "m"}, cloud, &stubLocal{}, nil)

	_, err := o.GenerateQuestions(context.Background(), "some notes", 5)
	require.ErrorIs(t, err, ErrParsingFailed)
	require.Equal(t, 2, cloud.calls)
}

func TestGenerateQuestions_TransportErrorDoesNotRetry(t *testing.T) {
	cloud := &stubCloud{
		completeFn: func(_, _, _ string) (string, error) { return "", ErrGenerationFailed },
	}
	o := newTestOrchestrator(&stubSettings{pref: PreferenceCloudOnly, textModel: "m"}, cloud, &stubLocal{}, nil)

	_, err := o.GenerateQuestions(context.Background(), "some notes", 5)
	require.ErrorIs(t, err, ErrGenerationFailed)
	require.Equal(t, 1, cloud.calls)
}

func TestGenerateQuestions_RetryTargetsSameProvider(t *testing.T) {
	localOutputs := []string{"no tags here", parseableQuestions}
	local := &stubLocal{available: true}
	local.completeFn = func(_, _ string) (string, error) {
		return localOutputs[local.calls-1], nil
	}
	cloud := &stubCloud{
		completeFn: func(_, _, _ string) (string, error) { return parseableQuestions, nil },
	}
	o := newTestOrchestrator(&stubSettings{pref: PreferenceAutomatic, textModel: "m"}, cloud, local, nil)

	questions, err := o.GenerateQuestions(context.Background(), "some notes", 5)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, 2, local.calls)
	require.Zero(t, cloud.calls)
}

func TestGenerateFlashcards_CapsBatchAtRequestedCount(t *testing.T) {
	cloud := &stubCloud{
		completeFn: func(_, _, _ string) (string, error) {
			return parseableFlashcards + "\n" + parseableFlashcards + "\n" + parseableFlashcards, nil
		},
	}
	o := newTestOrchestrator(&stubSettings{pref: PreferenceCloudOnly, textModel: "m"}, cloud, &stubLocal{}, nil)

	cards, err := o.GenerateFlashcards(context.Background(), "notes", 2)
	require.NoError(t, err)
	require.Len(t, cards, 2)
}

func TestGenerateSummary_UsesCompletionCache(t *testing.T) {
	cloud := &stubCloud{
		completeFn: func(_, _, _ string) (string, error) { return "a summary", nil },
	}
	cache := newStubCache()
	o := newTestOrchestrator(&stubSettings{pref: PreferenceCloudOnly, textModel: "m"}, cloud, &stubLocal{}, cache)

	first, err := o.GenerateSummary(context.Background(), "the water cycle")
	require.NoError(t, err)

	second, err := o.GenerateSummary(context.Background(), "the water cycle")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, cloud.calls)
	require.Equal(t, 1, cache.sets)
}

func TestGenerateSummary_RejectsEmptyContent(t *testing.T) {
	o := newTestOrchestrator(&stubSettings{pref: PreferenceCloudOnly, textModel: "m"}, &stubCloud{}, &stubLocal{}, nil)

	_, err := o.GenerateSummary(context.Background(), "   ")
	require.Error(t, err)
}

func TestPerformVisionChat_AlwaysUsesCloud(t *testing.T) {
	local := &stubLocal{
		available:  true,
		completeFn: func(_, _ string) (string, error) { return "local", nil },
	}
	var gotModel string
	cloud := &stubCloud{}
	cloud.completeFn = func(model, _, _ string) (string, error) {
		gotModel = model
		return "it is a triangle", nil
	}
	o := newTestOrchestrator(
		&stubSettings{pref: PreferenceAutomatic, textModel: "text-m", visionModel: "vision-m"},
		cloud, local, nil,
	)

	out, err := o.PerformVisionChat(context.Background(), "what shape is this?", "aGVsbG8=")
	require.NoError(t, err)
	require.Equal(t, "it is a triangle", out)
	require.Equal(t, "vision-m", gotModel)
	require.Zero(t, local.calls)
}

func TestPreviewFallbackNotice_DoesNotStore(t *testing.T) {
	local := &stubLocal{available: false, reason: "model not downloaded"}
	o := newTestOrchestrator(&stubSettings{pref: PreferenceAutomatic, textModel: "m"}, &stubCloud{}, local, nil)

	notice, err := o.PreviewFallbackNotice(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Using cloud generation: model not downloaded", notice)
	require.Empty(t, o.PopFallbackNotice())
}
