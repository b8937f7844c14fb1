package propmatch

import (
	"context"

	"go.uber.org/zap"
)

// Embedder converts text to vector embeddings. Provide one with
// WithEmbedder, or use WithOpenAI for the built-in provider.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries the embedding vector and token counts.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string

	embedder      Embedder
	openaiKey     string
	openaiBaseURL string
	model         string
	dimensions    int

	keyPrefix       string
	hnswM           int
	hnswEFConstruct int
	defaultLimit    int
	maxLimit        int
	fallbackScore   float64

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithEmbedder sets a custom text embedding provider.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithOpenAI uses the built-in OpenAI-compatible embedding provider.
func WithOpenAI(apiKey, model string, dimensions int) Option {
	return optionFunc(func(c *clientConfig) {
		c.openaiKey = apiKey
		c.model = model
		c.dimensions = dimensions
	})
}

// WithOpenAIBaseURL points the built-in provider at a compatible endpoint.
func WithOpenAIBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openaiBaseURL = baseURL
	})
}

// WithKeyPrefix overrides the Redis key namespace. Default "propmatch:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithHNSW configures HNSW index parameters (M and EF construction).
func WithHNSW(m, efConstruct int) Option {
	return optionFunc(func(c *clientConfig) {
		c.hnswM = m
		c.hnswEFConstruct = efConstruct
	})
}

// WithLimits sets the default and maximum result counts per query.
func WithLimits(defaultLimit, maxLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	})
}

// WithFallbackScore sets the placeholder similarity on fallback results.
func WithFallbackScore(score float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.fallbackScore = score
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
