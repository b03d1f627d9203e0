package iris

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Logger is the minimal logging interface supported by the SDK.
type Logger interface {
	Printf(format string, v ...any)
}

// RequestHook allows callers to inspect or mutate requests before they are sent.
type RequestHook func(*http.Request)

// ResponseHook allows callers to inspect responses (raw bytes included).
type ResponseHook func(*http.Response, []byte)

// Config holds SDK configuration.
type Config struct {
	APIKey string
	UserID int64

	// Backend hosts. APIBaseURL serves the primary data API,
	// WorkflowBaseURL serves workflow/chat execution, and DefaultBaseURL
	// catches everything else (it equals APIBaseURL when unset).
	APIBaseURL      string
	WorkflowBaseURL string
	DefaultBaseURL  string

	// Optional OAuth2 client-credentials pair. Only consulted when a
	// request explicitly opts into client-credentials auth.
	ClientID     string
	ClientSecret string

	Timeout    time.Duration
	MaxRetries int

	Debug bool

	ExtraHeaders http.Header
	ProxyURL     *url.URL

	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
	RetryJitter          float64

	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration

	Logger        Logger
	RedactHeaders []string

	BeforeRequest []RequestHook
	AfterResponse []ResponseHook
}

// ConfigParams provides optional overrides for building a Config.
type ConfigParams struct {
	APIKey string
	UserID int64

	APIBaseURL      string
	WorkflowBaseURL string
	DefaultBaseURL  string

	ClientID     string
	ClientSecret string

	// ConfigFile points at an optional YAML file whose values fill in
	// anything not supplied by params or environment.
	ConfigFile string

	Timeout        time.Duration
	TimeoutSeconds float64
	MaxRetries     int
	Debug          *bool

	ExtraHeaders http.Header
	ProxyURL     string

	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
	RetryJitter          float64

	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration

	Logger        Logger
	RedactHeaders []string

	BeforeRequest []RequestHook
	AfterResponse []ResponseHook
}

const (
	defaultAPIBaseURL      = "https://api.useiris.com"
	defaultWorkflowBaseURL = "https://iris.useiris.com"
	defaultTimeout         = 30 * time.Second
	defaultMaxRetries      = 3
	defaultRetryInitial    = time.Second
	defaultRetryMax        = 30 * time.Second
	defaultRetryMultiplier = 2.0
	defaultMaxIdleConns    = 100
	defaultMaxIdlePerHost  = 10
	defaultIdleConnTimeout = 90 * time.Second
)

// fileConfig is the on-disk YAML shape accepted by LoadConfigFile.
type fileConfig struct {
	APIKey          string  `yaml:"api_key"`
	UserID          int64   `yaml:"user_id"`
	APIBaseURL      string  `yaml:"api_base_url"`
	WorkflowBaseURL string  `yaml:"workflow_base_url"`
	DefaultBaseURL  string  `yaml:"default_base_url"`
	ClientID        string  `yaml:"client_id"`
	ClientSecret    string  `yaml:"client_secret"`
	TimeoutSeconds  float64 `yaml:"timeout_seconds"`
	MaxRetries      int     `yaml:"max_retries"`
	Debug           *bool   `yaml:"debug"`
}

// LoadConfigFile reads a YAML config file into ConfigParams. A missing
// file is an error; callers decide whether the file is optional.
func LoadConfigFile(path string) (ConfigParams, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ConfigParams{}, fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return ConfigParams{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return ConfigParams{
		APIKey:          fc.APIKey,
		UserID:          fc.UserID,
		APIBaseURL:      fc.APIBaseURL,
		WorkflowBaseURL: fc.WorkflowBaseURL,
		DefaultBaseURL:  fc.DefaultBaseURL,
		ClientID:        fc.ClientID,
		ClientSecret:    fc.ClientSecret,
		TimeoutSeconds:  fc.TimeoutSeconds,
		MaxRetries:      fc.MaxRetries,
		Debug:           fc.Debug,
	}, nil
}

// LoadConfig builds a Config from parameters or environment variables.
// Environment fallbacks:
//
//	IRIS_API_KEY, IRIS_USER_ID, IRIS_API_BASE_URL, IRIS_WORKFLOW_BASE_URL,
//	IRIS_DEFAULT_BASE_URL, IRIS_CLIENT_ID, IRIS_CLIENT_SECRET,
//	IRIS_CONFIG_FILE, IRIS_TIMEOUT, IRIS_MAX_RETRIES, IRIS_DEBUG,
//	IRIS_PROXY, IRIS_EXTRA_HEADERS, IRIS_RETRY_INITIAL_MS,
//	IRIS_RETRY_MAX_MS, IRIS_RETRY_MULTIPLIER, IRIS_RETRY_JITTER,
//	IRIS_MAX_IDLE_CONNS, IRIS_MAX_IDLE_CONNS_PER_HOST,
//	IRIS_IDLE_CONN_TIMEOUT.
func LoadConfig(apiKey string, userID int64, baseURL string, timeoutSeconds float64, maxRetries int) (Config, error) {
	return LoadConfigWithParams(ConfigParams{
		APIKey:         apiKey,
		UserID:         userID,
		APIBaseURL:     baseURL,
		TimeoutSeconds: timeoutSeconds,
		MaxRetries:     maxRetries,
	})
}

// LoadConfigWithParams is an extended constructor that accepts structured
// options. Precedence per field: explicit params, then environment, then
// the config file (if any), then built-in defaults.
func LoadConfigWithParams(params ConfigParams) (Config, error) {
	var file ConfigParams
	if path := firstNonEmpty(params.ConfigFile, os.Getenv("IRIS_CONFIG_FILE")); path != "" {
		loaded, err := LoadConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	envIdleTimeout, err := parseEnvDuration("IRIS_IDLE_CONN_TIMEOUT", time.Second)
	if err != nil {
		return Config{}, err
	}

	envMaxRetries, envMaxRetriesSet, err := parseEnvInt("IRIS_MAX_RETRIES")
	if err != nil {
		return Config{}, err
	}
	envUserID, envUserIDSet, err := parseEnvInt("IRIS_USER_ID")
	if err != nil {
		return Config{}, err
	}
	envMaxIdleConns, envMaxIdleConnsSet, err := parseEnvInt("IRIS_MAX_IDLE_CONNS")
	if err != nil {
		return Config{}, err
	}
	envMaxIdlePerHost, envMaxIdlePerHostSet, err := parseEnvInt("IRIS_MAX_IDLE_CONNS_PER_HOST")
	if err != nil {
		return Config{}, err
	}

	maxRetries := defaultMaxRetries
	if file.MaxRetries != 0 {
		maxRetries = file.MaxRetries
	}
	if envMaxRetriesSet {
		maxRetries = envMaxRetries
	}
	if params.MaxRetries != 0 {
		maxRetries = params.MaxRetries
	}

	userID := file.UserID
	if envUserIDSet {
		userID = int64(envUserID)
	}
	if params.UserID != 0 {
		userID = params.UserID
	}

	maxIdleConns := defaultMaxIdleConns
	if envMaxIdleConnsSet {
		maxIdleConns = envMaxIdleConns
	}
	if params.MaxIdleConns != 0 {
		maxIdleConns = params.MaxIdleConns
	}

	maxIdlePerHost := defaultMaxIdlePerHost
	if envMaxIdlePerHostSet {
		maxIdlePerHost = envMaxIdlePerHost
	}
	if params.MaxIdleConnsPerHost != 0 {
		maxIdlePerHost = params.MaxIdleConnsPerHost
	}

	cfg := Config{
		APIKey:               firstNonEmpty(params.APIKey, os.Getenv("IRIS_API_KEY"), file.APIKey),
		UserID:               userID,
		APIBaseURL:           firstNonEmpty(params.APIBaseURL, os.Getenv("IRIS_API_BASE_URL"), file.APIBaseURL, defaultAPIBaseURL),
		WorkflowBaseURL:      firstNonEmpty(params.WorkflowBaseURL, os.Getenv("IRIS_WORKFLOW_BASE_URL"), file.WorkflowBaseURL, defaultWorkflowBaseURL),
		DefaultBaseURL:       firstNonEmpty(params.DefaultBaseURL, os.Getenv("IRIS_DEFAULT_BASE_URL"), file.DefaultBaseURL),
		ClientID:             firstNonEmpty(params.ClientID, os.Getenv("IRIS_CLIENT_ID"), file.ClientID),
		ClientSecret:         firstNonEmpty(params.ClientSecret, os.Getenv("IRIS_CLIENT_SECRET"), file.ClientSecret),
		MaxRetries:           maxRetries,
		ExtraHeaders:         cloneHeaders(params.ExtraHeaders),
		RetryInitialInterval: defaultRetryInitial,
		RetryMaxInterval:     defaultRetryMax,
		RetryMultiplier:      defaultRetryMultiplier,
		MaxIdleConns:         maxIdleConns,
		MaxIdleConnsPerHost:  maxIdlePerHost,
		IdleConnTimeout:      firstNonZeroDuration(params.IdleConnTimeout, envIdleTimeout, defaultIdleConnTimeout),
		Logger:               params.Logger,
		RedactHeaders:        params.RedactHeaders,
		BeforeRequest:        params.BeforeRequest,
		AfterResponse:        params.AfterResponse,
	}
	// The default host mirrors the primary data host unless overridden.
	if cfg.DefaultBaseURL == "" {
		cfg.DefaultBaseURL = cfg.APIBaseURL
	}

	if cfg.ExtraHeaders == nil {
		cfg.ExtraHeaders = http.Header{}
	}
	if cfg.RedactHeaders == nil {
		cfg.RedactHeaders = []string{"Authorization"}
	}

	if params.Debug != nil {
		cfg.Debug = *params.Debug
	} else if env := os.Getenv("IRIS_DEBUG"); env != "" {
		val, err := strconv.ParseBool(env)
		if err != nil {
			return Config{}, fmt.Errorf("parse IRIS_DEBUG: %w", err)
		}
		cfg.Debug = val
	} else if file.Debug != nil {
		cfg.Debug = *file.Debug
	}

	if params.Timeout != 0 {
		cfg.Timeout = params.Timeout
	} else if params.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(params.TimeoutSeconds * float64(time.Second))
	} else if envTimeout, err := parseEnvDuration("IRIS_TIMEOUT", time.Second); err != nil {
		return Config{}, err
	} else if envTimeout > 0 {
		cfg.Timeout = envTimeout
	} else if file.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(file.TimeoutSeconds * float64(time.Second))
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Timeout < 0 {
		return Config{}, fmt.Errorf("timeout must be non-negative")
	}

	if env := os.Getenv("IRIS_EXTRA_HEADERS"); env != "" {
		envHeaders, err := parseHeadersEnv(env)
		if err != nil {
			return Config{}, err
		}
		for k, vals := range envHeaders {
			for _, v := range vals {
				cfg.ExtraHeaders.Add(k, v)
			}
		}
	}

	proxyURL := params.ProxyURL
	if proxyURL == "" {
		proxyURL = os.Getenv("IRIS_PROXY")
	}
	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return Config{}, fmt.Errorf("parse IRIS_PROXY: %w", err)
		}
		cfg.ProxyURL = parsed
	}

	// Retry tuning: environment fills the gaps, explicit params win.
	if val, err := parseEnvDuration("IRIS_RETRY_INITIAL_MS", time.Millisecond); err != nil {
		return Config{}, err
	} else if val > 0 {
		cfg.RetryInitialInterval = val
	}
	if val, err := parseEnvDuration("IRIS_RETRY_MAX_MS", time.Millisecond); err != nil {
		return Config{}, err
	} else if val > 0 {
		cfg.RetryMaxInterval = val
	}
	if valStr := os.Getenv("IRIS_RETRY_MULTIPLIER"); valStr != "" {
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse IRIS_RETRY_MULTIPLIER: %w", err)
		}
		cfg.RetryMultiplier = val
	}
	if valStr := os.Getenv("IRIS_RETRY_JITTER"); valStr != "" {
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse IRIS_RETRY_JITTER: %w", err)
		}
		cfg.RetryJitter = val
	}
	if params.RetryInitialInterval != 0 {
		cfg.RetryInitialInterval = params.RetryInitialInterval
	}
	if params.RetryMaxInterval != 0 {
		cfg.RetryMaxInterval = params.RetryMaxInterval
	}
	if params.RetryMultiplier != 0 {
		cfg.RetryMultiplier = params.RetryMultiplier
	}
	if params.RetryJitter != 0 {
		cfg.RetryJitter = params.RetryJitter
	}

	// The API key is deliberately not validated here. Public endpoints
	// work without one; user-token endpoints surface ErrMissingAPIKey at
	// request time, before any network call.
	if cfg.MaxRetries < 1 {
		return Config{}, fmt.Errorf("max retries must be >= 1")
	}
	if cfg.MaxIdleConns < 0 {
		return Config{}, fmt.Errorf("max idle conns must be >= 0")
	}
	if cfg.MaxIdleConnsPerHost < 0 {
		return Config{}, fmt.Errorf("max idle conns per host must be >= 0")
	}
	if cfg.IdleConnTimeout < 0 {
		return Config{}, fmt.Errorf("idle connection timeout must be non-negative")
	}
	if cfg.RetryInitialInterval <= 0 || cfg.RetryMaxInterval <= 0 {
		return Config{}, fmt.Errorf("retry intervals must be positive")
	}
	if cfg.RetryMultiplier < 1 {
		return Config{}, fmt.Errorf("retry multiplier must be >= 1")
	}
	if cfg.RetryJitter < 0 || cfg.RetryJitter > 1 {
		return Config{}, fmt.Errorf("retry jitter must be between 0 and 1")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZeroDuration(values ...time.Duration) time.Duration {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func parseEnvInt(env string) (int, bool, error) {
	val, ok := os.LookupEnv(env)
	if !ok || val == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, true, fmt.Errorf("parse %s: %w", env, err)
	}
	return parsed, true, nil
}

func parseEnvDuration(env string, numericUnit time.Duration) (time.Duration, error) {
	val := os.Getenv(env)
	if val == "" {
		return 0, nil
	}
	if duration, err := time.ParseDuration(val); err == nil {
		return duration, nil
	}
	seconds, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", env, err)
	}
	return time.Duration(seconds * float64(numericUnit)), nil
}

func parseHeadersEnv(val string) (http.Header, error) {
	headers := http.Header{}
	if val == "" {
		return headers, nil
	}
	for _, entry := range strings.FieldsFunc(val, func(r rune) bool { return r == ';' || r == ',' || r == '\n' }) {
		if entry == "" {
			continue
		}
		sep := ":"
		if strings.Contains(entry, "=") {
			sep = "="
		}
		parts := strings.SplitN(entry, sep, 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid header entry %q", entry)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			return nil, fmt.Errorf("invalid header entry %q", entry)
		}
		headers.Add(key, value)
	}
	return headers, nil
}

func cloneHeaders(h http.Header) http.Header {
	if h == nil {
		return http.Header{}
	}
	clone := http.Header{}
	for k, vals := range h {
		clone[k] = append([]string(nil), vals...)
	}
	return clone
}
