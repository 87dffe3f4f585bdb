package local

// Config contains local model runtime configuration. The runtime is any
// OpenAI-compatible server on the local machine (llama.cpp, Ollama, LM
// Studio); generation never leaves the device.
type Config struct {
	Enabled bool   `env:"LOCAL_ENABLED"  envDefault:"false"`
	BaseURL string `env:"LOCAL_BASE_URL" envDefault:"http://127.0.0.1:11434/v1"`
	Model   string `env:"LOCAL_MODEL"    envDefault:"llama3.2:3b"`
	Timeout int    `env:"LOCAL_TIMEOUT"  envDefault:"120"`
}
