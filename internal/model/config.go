package model

import "time"

// Config is the complete TrustLens configuration.
// Components receive the sections they need at construction time.
type Config struct {
	LLM        LLMConfig        `yaml:"llm"`
	Search     SearchConfig     `yaml:"search"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	HTTP       HTTPConfig       `yaml:"http"`
	Cache      CacheConfig      `yaml:"cache"`
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Reputation ReputationConfig `yaml:"reputation"`
}

// LLMConfig configures the text-completion provider
type LLMConfig struct {
	Provider  string `yaml:"provider"`   // "groq", "openai", "ollama"
	Model     string `yaml:"model"`      // Main reasoning model
	FastModel string `yaml:"fast_model"` // Cheaper model for classification/ranking
	APIKey    string `yaml:"api_key"`    // Usually from GROQ_API_KEY / OPENAI_API_KEY
	BaseURL   string `yaml:"base_url"`   // Custom endpoint (Groq, Ollama)
	Timeout   int    `yaml:"timeout"`    // Seconds per completion call
	MaxTokens int    `yaml:"max_tokens"`
}

// SearchConfig configures evidence retrieval
type SearchConfig struct {
	Provider           string  `yaml:"provider"`              // "duckduckgo", "serpapi", "google", "mock", "" = auto
	SerpAPIKey         string  `yaml:"serpapi_key"`
	GoogleAPIKey       string  `yaml:"google_api_key"`
	GoogleCSEID        string  `yaml:"google_cse_id"`
	MaxResultsPerQuery int     `yaml:"max_results_per_query"`
	Workers            int     `yaml:"workers"`              // Concurrent in-flight searches
	RequestsPerSecond  float64 `yaml:"requests_per_second"`  // Per-domain politeness for scraping
}

// PipelineConfig bounds the verification pipeline
type PipelineConfig struct {
	MaxClaims           int `yaml:"max_claims"`             // Per article
	MaxEvidencePerClaim int `yaml:"max_evidence_per_claim"` // Top-K after ranking
	MaxQueriesPerClaim  int `yaml:"max_queries_per_claim"`
	MaxPromptChars      int `yaml:"max_prompt_chars"` // Text prefix fed to extraction
}

// HTTPConfig configures outbound HTTP (content fetch)
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
}

// CacheConfig configures the verification result cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"` // Disk layer location
	TTL     time.Duration `yaml:"ttl"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StoreConfig configures run persistence
type StoreConfig struct {
	Path string `yaml:"path"` // SQLite file, empty disables persistence
}

// ReputationConfig overrides the built-in domain trust lists
type ReputationConfig struct {
	Trusted []string `yaml:"trusted"` // Substring match, score 0.9
	Medium  []string `yaml:"medium"`  // Substring match, score 0.7
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "groq",
			Model:     "llama-3.3-70b-versatile",
			FastModel: "llama-3.1-8b-instant",
			Timeout:   30,
			MaxTokens: 4000,
		},
		Search: SearchConfig{
			Provider:           "",
			MaxResultsPerQuery: 5,
			Workers:            3,
			RequestsPerSecond:  1.0,
		},
		Pipeline: PipelineConfig{
			MaxClaims:           50,
			MaxEvidencePerClaim: 10,
			MaxQueriesPerClaim:  3,
			MaxPromptChars:      12000,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "TrustLens/0.1 (+https://github.com/ppiankov/trustlens)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: StoreConfig{},
	}
}
