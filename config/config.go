// Package config has the configuration file for the app
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Environment is the deployment environment the service runs in.
type Environment string

const (
	EnvDevelopment Environment = "dev"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
)

func (e Environment) String() string {
	return string(e)
}

// ParseEnvironment accepts the short and long spellings of each environment.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dev", "development":
		return EnvDevelopment, nil
	case "staging":
		return EnvStaging, nil
	case "prod", "production":
		return EnvProduction, nil
	case "test":
		return EnvTest, nil
	default:
		return EnvDevelopment, fmt.Errorf("ENV must be one of: [dev staging prod test], got: %s", s)
	}
}

// Supported generation providers
const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
	ProviderGroq   = "groq"
)

// DefaultRetrievalBlacklist holds the boilerplate headings found in the
// pharmacopoeia front matter plus the class-label marker.
var DefaultRetrievalBlacklist = []string{
	"sumário",
	"índice",
	"presidentes",
	"colaboradores",
	"prefácio",
	"apresentação",
	"agradecimentos",
	"classe terapêutica",
}

// Config holds all application configuration
type Config struct {
	Port              string
	Address           string
	Env               Environment
	LogLevel          string
	LogRetentionWeeks int   // Number of weeks to keep log files
	MaxLogFileSize    int64 // Maximum log file size in bytes
	MaxRequestBody    int64 // Maximum request body size in bytes
	MaxHeaderSize     int64 // Maximum header size in bytes

	// Index
	MonographSource  string
	IndexPath        string
	IndexReloadTimes string

	// Retrieval
	TopK                int
	RetrievalMultiplier int
	MinNameLength       int
	RetrievalBlacklist  []string

	// Generation
	LLMProvider          string
	GeminiAPIKey         string
	GeminiModel          string
	AnthropicAPIKey      string
	ClaudeModel          string
	GroqAPIKey           string
	GroqModel            string
	GroqBaseURL          string
	LLMTemperature       float64
	LLMMaxTokens         int
	LLMRequestsPerMinute int
	ExpansionTimeout     time.Duration
	GenerationTimeout    time.Duration
	SearchTimeout        time.Duration

	// Pricing
	PriceTableFile string
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	env, err := ParseEnvironment(getEnvWithDefault("ENV", "dev"))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid ENV: %w", err)
	}

	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "8000"),
		Address:           getEnvWithDefault("ADDRESS", "127.0.0.1"),
		Env:               env,
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		LogRetentionWeeks: getIntEnvWithDefault("LOG_RETENTION_WEEKS", 4),         // 4 weeks default
		MaxLogFileSize:    getInt64EnvWithDefault("MAX_LOG_FILE_SIZE", 104857600), // 100MB default
		MaxRequestBody:    getInt64EnvWithDefault("MAX_REQUEST_BODY", 1048576),    // 1MB default
		MaxHeaderSize:     getInt64EnvWithDefault("MAX_HEADER_SIZE", 1048576),     // 1MB default

		MonographSource:  getEnvWithDefault("MONOGRAPH_SOURCE", "data/monographs.yaml"),
		IndexPath:        getEnvWithDefault("INDEX_PATH", "data/index"),
		IndexReloadTimes: getEnvWithDefault("INDEX_RELOAD_TIMES", "06:00;18:00"),

		TopK:                getIntEnvWithDefault("TOP_K_RESULTS", 5),
		RetrievalMultiplier: getIntEnvWithDefault("RETRIEVAL_MULTIPLIER", 4),
		MinNameLength:       getIntEnvWithDefault("MIN_NAME_LENGTH", 5),
		RetrievalBlacklist:  getListEnvWithDefault("RETRIEVAL_BLACKLIST", DefaultRetrievalBlacklist),

		LLMProvider:          strings.ToLower(getEnvWithDefault("LLM_PROVIDER", ProviderGemini)),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getEnvWithDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		AnthropicAPIKey:      os.Getenv("ANTHROPIC_API_KEY"),
		ClaudeModel:          getEnvWithDefault("CLAUDE_MODEL", "claude-3-5-haiku-latest"),
		GroqAPIKey:           os.Getenv("GROQ_API_KEY"),
		GroqModel:            getEnvWithDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqBaseURL:          getEnvWithDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMTemperature:       getFloatEnvWithDefault("LLM_TEMPERATURE", 0.1),
		LLMMaxTokens:         getIntEnvWithDefault("LLM_MAX_TOKENS", 2048),
		LLMRequestsPerMinute: getIntEnvWithDefault("LLM_REQUESTS_PER_MINUTE", 30),
		ExpansionTimeout:     getDurationEnvWithDefault("EXPANSION_TIMEOUT", 15*time.Second),
		GenerationTimeout:    getDurationEnvWithDefault("GENERATION_TIMEOUT", 60*time.Second),
		SearchTimeout:        getDurationEnvWithDefault("SEARCH_TIMEOUT", 10*time.Second),

		PriceTableFile: os.Getenv("PRICE_TABLE_FILE"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// APIKey returns the key of the selected provider.
func (c *Config) APIKey() string {
	switch c.LLMProvider {
	case ProviderClaude:
		return c.AnthropicAPIKey
	case ProviderGroq:
		return c.GroqAPIKey
	default:
		return c.GeminiAPIKey
	}
}

// Model returns the model of the selected provider.
func (c *Config) Model() string {
	switch c.LLMProvider {
	case ProviderClaude:
		return c.ClaudeModel
	case ProviderGroq:
		return c.GroqModel
	default:
		return c.GeminiModel
	}
}

// ReloadTimes returns the trimmed HH:MM entries of INDEX_RELOAD_TIMES.
func (c *Config) ReloadTimes() []string {
	return SplitReloadTimes(c.IndexReloadTimes)
}

// SplitReloadTimes splits a semicolon-separated HH:MM list, dropping blanks.
func SplitReloadTimes(times string) []string {
	var out []string
	for _, t := range strings.Split(times, ";") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// validateConfig validates all configuration values
func validateConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := validateSizeLimit(cfg.MaxRequestBody, "MAX_REQUEST_BODY"); err != nil {
		return fmt.Errorf("invalid MAX_REQUEST_BODY: %w", err)
	}

	if err := validateSizeLimit(cfg.MaxHeaderSize, "MAX_HEADER_SIZE"); err != nil {
		return fmt.Errorf("invalid MAX_HEADER_SIZE: %w", err)
	}

	if err := validateLogRetentionWeeks(cfg.LogRetentionWeeks); err != nil {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: %w", err)
	}

	if err := validateMaxLogFileSize(cfg.MaxLogFileSize); err != nil {
		return fmt.Errorf("invalid MAX_LOG_FILE_SIZE: %w", err)
	}

	if err := validateMonographSource(cfg.MonographSource); err != nil {
		return fmt.Errorf("invalid MONOGRAPH_SOURCE: %w", err)
	}

	if cfg.IndexPath == "" {
		return fmt.Errorf("invalid INDEX_PATH: INDEX_PATH cannot be empty")
	}

	if err := validateReloadTimes(cfg.IndexReloadTimes); err != nil {
		return fmt.Errorf("invalid INDEX_RELOAD_TIMES: %w", err)
	}

	if err := validateRange(cfg.TopK, 1, 20, "TOP_K_RESULTS"); err != nil {
		return fmt.Errorf("invalid TOP_K_RESULTS: %w", err)
	}

	if err := validateRange(cfg.RetrievalMultiplier, 1, 10, "RETRIEVAL_MULTIPLIER"); err != nil {
		return fmt.Errorf("invalid RETRIEVAL_MULTIPLIER: %w", err)
	}

	if err := validateRange(cfg.MinNameLength, 1, 50, "MIN_NAME_LENGTH"); err != nil {
		return fmt.Errorf("invalid MIN_NAME_LENGTH: %w", err)
	}

	if err := validateProvider(cfg); err != nil {
		return fmt.Errorf("invalid LLM_PROVIDER: %w", err)
	}

	if cfg.LLMTemperature < 0 || cfg.LLMTemperature > 2 {
		return fmt.Errorf("invalid LLM_TEMPERATURE: must be between 0 and 2, got: %v", cfg.LLMTemperature)
	}

	if err := validateRange(cfg.LLMMaxTokens, 64, 32768, "LLM_MAX_TOKENS"); err != nil {
		return fmt.Errorf("invalid LLM_MAX_TOKENS: %w", err)
	}

	if err := validateRange(cfg.LLMRequestsPerMinute, 1, 6000, "LLM_REQUESTS_PER_MINUTE"); err != nil {
		return fmt.Errorf("invalid LLM_REQUESTS_PER_MINUTE: %w", err)
	}

	for name, d := range map[string]time.Duration{
		"EXPANSION_TIMEOUT":  cfg.ExpansionTimeout,
		"GENERATION_TIMEOUT": cfg.GenerationTimeout,
		"SEARCH_TIMEOUT":     cfg.SearchTimeout,
	} {
		if err := validateTimeout(d, name); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	return nil
}

// validatePort validates the PORT environment variable
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	// Check for privileged ports
	if portNum < 1024 {
		return fmt.Errorf("PORT %d is privileged (less than 1024), use ports 1024-65535", portNum)
	}

	return nil
}

// validateAddress validates the ADDRESS environment variable
func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("ADDRESS cannot be empty")
	}

	if address == "127.0.0.1" || address == "::1" || address == "localhost" {
		return nil
	}

	ip := net.ParseIP(address)
	if ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}

	// Only loopback and private ranges, the service sits behind a proxy
	if !ip.IsLoopback() && !ip.IsPrivate() && !ip.IsUnspecified() {
		return fmt.Errorf("ADDRESS %s is a public IP, consider using private network ranges for security", address)
	}

	return nil
}

// validateLogLevel validates the LOG_LEVEL environment variable
func validateLogLevel(logLevel string) error {
	if logLevel == "" {
		return fmt.Errorf("LOG_LEVEL cannot be empty")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	logLevel = strings.ToLower(logLevel)

	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// validateSizeLimit validates size limit configuration values
func validateSizeLimit(size int64, configName string) error {
	if size <= 0 {
		return fmt.Errorf("%s must be positive, got: %d", configName, size)
	}

	if size > 100*1024*1024 { // 100MB
		return fmt.Errorf("%s is too large (max 100MB), got: %d bytes", configName, size)
	}

	return nil
}

// validateLogRetentionWeeks validates the LOG_RETENTION_WEEKS environment variable
func validateLogRetentionWeeks(weeks int) error {
	if weeks <= 0 {
		return fmt.Errorf("LOG_RETENTION_WEEKS must be positive, got: %d", weeks)
	}

	if weeks > 52 { // 1 year maximum
		return fmt.Errorf("LOG_RETENTION_WEEKS is too large (max 52 weeks), got: %d", weeks)
	}

	return nil
}

// validateMaxLogFileSize validates the MAX_LOG_FILE_SIZE environment variable
func validateMaxLogFileSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE must be positive, got: %d", size)
	}

	// Minimum 1MB, maximum 1GB
	if size < 1024*1024 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE is too small (min 1MB), got: %d bytes", size)
	}

	if size > 1024*1024*1024 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE is too large (max 1GB), got: %d bytes", size)
	}

	return nil
}

// validateMonographSource accepts a .yaml/.yml/.json path or an http(s) URL.
func validateMonographSource(source string) error {
	if source == "" {
		return fmt.Errorf("MONOGRAPH_SOURCE cannot be empty")
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		u, err := url.Parse(source)
		if err != nil || u.Host == "" {
			return fmt.Errorf("MONOGRAPH_SOURCE is not a valid URL: %s", source)
		}
		return nil
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml", ".json":
		return nil
	default:
		return fmt.Errorf("MONOGRAPH_SOURCE must be a .yaml, .yml or .json file, got: %s", source)
	}
}

// validateReloadTimes checks a semicolon-separated list of HH:MM times.
func validateReloadTimes(times string) error {
	if strings.TrimSpace(times) == "" {
		return fmt.Errorf("INDEX_RELOAD_TIMES cannot be empty")
	}

	for _, t := range strings.Split(times, ";") {
		if _, err := time.Parse("15:04", strings.TrimSpace(t)); err != nil {
			return fmt.Errorf("%q is not a HH:MM time", t)
		}
	}

	return nil
}

func validateRange(value, min, max int, configName string) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d, got: %d", configName, min, max, value)
	}
	return nil
}

// validateProvider checks the provider name and that its API key is set.
func validateProvider(cfg *Config) error {
	switch cfg.LLMProvider {
	case ProviderGemini, ProviderClaude, ProviderGroq:
	default:
		return fmt.Errorf("LLM_PROVIDER must be one of: [gemini claude groq], got: %s", cfg.LLMProvider)
	}

	// Tests run with mocked generators
	if cfg.Env == EnvTest {
		return nil
	}

	if cfg.APIKey() == "" {
		return fmt.Errorf("API key for provider %s is not set", cfg.LLMProvider)
	}

	if cfg.LLMProvider == ProviderGroq {
		u, err := url.Parse(cfg.GroqBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("GROQ_BASE_URL is not a valid URL: %s", cfg.GroqBaseURL)
		}
	}

	return nil
}

func validateTimeout(d time.Duration, configName string) error {
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got: %s", configName, d)
	}
	if d > 10*time.Minute {
		return fmt.Errorf("%s is too large (max 10m), got: %s", configName, d)
	}
	return nil
}

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvWithDefault gets an environment variable as int with a default value
func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getInt64EnvWithDefault gets an environment variable as int64 with a default value
func getInt64EnvWithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnvWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getDurationEnvWithDefault accepts Go durations ("15s") or plain seconds ("15").
func getDurationEnvWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getListEnvWithDefault splits a comma-separated variable, trimming and
// lowercasing each entry.
func getListEnvWithDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"PORT",
		"ADDRESS",
		"ENV",
		"LOG_LEVEL",
		"LOG_RETENTION_WEEKS",
		"MAX_LOG_FILE_SIZE",
		"MAX_REQUEST_BODY",
		"MAX_HEADER_SIZE",
		"MONOGRAPH_SOURCE",
		"INDEX_PATH",
		"INDEX_RELOAD_TIMES",
		"TOP_K_RESULTS",
		"RETRIEVAL_MULTIPLIER",
		"MIN_NAME_LENGTH",
		"RETRIEVAL_BLACKLIST",
		"LLM_PROVIDER",
		"GEMINI_API_KEY",
		"GEMINI_MODEL",
		"ANTHROPIC_API_KEY",
		"CLAUDE_MODEL",
		"GROQ_API_KEY",
		"GROQ_MODEL",
		"GROQ_BASE_URL",
		"LLM_TEMPERATURE",
		"LLM_MAX_TOKENS",
		"LLM_REQUESTS_PER_MINUTE",
		"EXPANSION_TIMEOUT",
		"GENERATION_TIMEOUT",
		"SEARCH_TIMEOUT",
		"PRICE_TABLE_FILE",
	}
}
