package cloud

// Static model fallback chains, consulted only on rate-limit-class errors.
// Keys are primary model identifiers; values are tried in order after the
// primary. Models without an entry have no fallbacks.
var textFallbackChains = map[string][]string{
	"openai/gpt-oss-20b":  {"openai/gpt-oss-120b", "llama-3.3-70b-versatile"},
	"openai/gpt-oss-120b": {"llama-3.3-70b-versatile"},
	"qwen/qwen3-32b":      {"llama-3.3-70b-versatile"},
}

// Vision-capable models are scarcer, so the chain is shorter.
var visionFallbackChains = map[string][]string{
	"meta-llama/llama-4-scout-17b-16e-instruct": {"meta-llama/llama-4-maverick-17b-128e-instruct"},
}

// TextModelFallbacks returns the full try-order for a text model: the model
// itself followed by its fallbacks. Unknown models return only themselves.
func TextModelFallbacks(model string) []string {
	return chain(model, textFallbackChains)
}

// VisionModelFallbacks returns the full try-order for a vision model.
func VisionModelFallbacks(model string) []string {
	return chain(model, visionFallbackChains)
}

func chain(model string, table map[string][]string) []string {
	out := make([]string, 0, 1+len(table[model]))
	out = append(out, model)
	return append(out, table[model]...)
}
