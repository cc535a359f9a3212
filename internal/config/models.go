package config

import "time"

// CacheConfig selects and locates the session cache backend
type CacheConfig struct {
	Type          string
	TimestampPath string
	SnapshotPath  string
	SQLitePath    string
	MySQLDSN      string
}

// IMAPConfig represents the mailbox settings shared by all providers
type IMAPConfig struct {
	Mailbox string
	Timeout time.Duration
}

// ClassifierConfig selects the sentiment model
type ClassifierConfig struct {
	Provider string
	MaxChars int
}

// HuggingFaceConfig represents the configuration for the hosted inference API
type HuggingFaceConfig struct {
	APIToken string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
}

// GetCache returns the cache configuration
func (c *Config) GetCache() CacheConfig {
	return CacheConfig{
		Type:          c.GetString("cache.type"),
		TimestampPath: c.GetString("cache.timestamp_path"),
		SnapshotPath:  c.GetString("cache.snapshot_path"),
		SQLitePath:    c.GetString("cache.sqlite_path"),
		MySQLDSN:      c.GetString("cache.mysql_dsn"),
	}
}

// GetIMAP returns the IMAP configuration
func (c *Config) GetIMAP() (IMAPConfig, error) {
	timeout, err := c.GetDuration("imap.timeout")
	if err != nil {
		return IMAPConfig{}, err
	}
	return IMAPConfig{
		Mailbox: c.GetString("imap.mailbox"),
		Timeout: timeout,
	}, nil
}

// GetClassifier returns the classifier configuration
func (c *Config) GetClassifier() ClassifierConfig {
	return ClassifierConfig{
		Provider: c.GetString("classifier.provider"),
		MaxChars: c.GetInt("classifier.max_chars"),
	}
}

// GetHuggingFace returns the Hugging Face configuration
func (c *Config) GetHuggingFace() (HuggingFaceConfig, error) {
	timeout, err := c.GetDuration("huggingface.timeout")
	if err != nil {
		return HuggingFaceConfig{}, err
	}
	return HuggingFaceConfig{
		APIToken: c.GetString("huggingface.api_token"),
		BaseURL:  c.GetString("huggingface.base_url"),
		Model:    c.GetString("huggingface.model"),
		Timeout:  timeout,
	}, nil
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
	}
}
