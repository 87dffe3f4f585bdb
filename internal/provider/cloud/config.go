package cloud

// Config contains cloud chat-completion client configuration. The API key is
// not configured here: it is user-supplied and read from settings per request.
type Config struct {
	BaseURL        string `env:"CLOUD_BASE_URL"      envDefault:"https://api.groq.com/openai/v1"`
	Timeout        int    `env:"CLOUD_TIMEOUT"       envDefault:"60"`
	MinDelayMillis int    `env:"CLOUD_MIN_DELAY_MS"  envDefault:"500"`
	MaxDelayMillis int    `env:"CLOUD_MAX_DELAY_MS"  envDefault:"1500"`
}
