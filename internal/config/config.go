package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/faceit-scope/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	DBURL                       string
	DBDisablePreparedBinary     bool
	CacheEnabled                bool
	CacheTTL                    time.Duration
	CORSAllowedOrigins          []string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	PprofEnabled                bool
	PprofAddr                   string
	FaceitAPIKey                string
	FaceitBaseURL               string
	FaceitGameID                string
	FaceitFallbackGameID        string
	FaceitTimeout               time.Duration
	FaceitMaxRetries            int
	FaceitRateLimitMaxBackoff   time.Duration
	FaceitCircuitEnabled        bool
	FaceitCircuitFailureCount   int
	FaceitCircuitOpenTimeout    time.Duration
	FaceitCircuitHalfOpenMaxReq int
	SteamAPIKey                 string
	SteamBaseURL                string
	SteamTimeout                time.Duration
	MatchHistoryLimit           int
	MatchHydrationWorkers       int
	UptraceEnabled              bool
	UptraceDSN                  string
	UptraceLogsEnabled          bool
	UptraceCaptureRequestBody   bool
	UptraceRequestBodyMaxBytes  int
	BetterStackEnabled          bool
	BetterStackEndpoint         string
	BetterStackToken            string
	BetterStackTimeout          time.Duration
	BetterStackMinLevel         logging.Level
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
	LogLevel                    logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}
	uptraceCaptureRequestBody, err := strconv.ParseBool(getEnv("UPTRACE_CAPTURE_REQUEST_BODY", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_CAPTURE_REQUEST_BODY: %w", err)
	}
	uptraceRequestBodyMaxBytes, err := getEnvAsInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_REQUEST_BODY_MAX_BYTES: %w", err)
	}
	if uptraceRequestBodyMaxBytes <= 0 {
		return Config{}, fmt.Errorf("UPTRACE_REQUEST_BODY_MAX_BYTES must be > 0")
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}
	betterStackMinLevel := parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error"))

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	faceitTimeout, err := time.ParseDuration(getEnv("FACEIT_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_TIMEOUT: %w", err)
	}
	if faceitTimeout <= 0 {
		return Config{}, fmt.Errorf("FACEIT_TIMEOUT must be > 0")
	}
	faceitMaxRetries, err := getEnvAsInt("FACEIT_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_MAX_RETRIES: %w", err)
	}
	if faceitMaxRetries < 0 {
		return Config{}, fmt.Errorf("FACEIT_MAX_RETRIES must be >= 0")
	}
	faceitRateLimitMaxBackoff, err := time.ParseDuration(getEnv("FACEIT_RATE_LIMIT_MAX_BACKOFF", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_RATE_LIMIT_MAX_BACKOFF: %w", err)
	}
	if faceitRateLimitMaxBackoff <= 0 {
		return Config{}, fmt.Errorf("FACEIT_RATE_LIMIT_MAX_BACKOFF must be > 0")
	}
	faceitCircuitEnabled, err := strconv.ParseBool(getEnv("FACEIT_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_CIRCUIT_ENABLED: %w", err)
	}
	faceitCircuitFailureCount, err := getEnvAsInt("FACEIT_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if faceitCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FACEIT_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	faceitCircuitOpenTimeout, err := time.ParseDuration(getEnv("FACEIT_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if faceitCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FACEIT_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	faceitCircuitHalfOpenMaxReq, err := getEnvAsInt("FACEIT_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if faceitCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FACEIT_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	steamTimeout, err := time.ParseDuration(getEnv("STEAM_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STEAM_TIMEOUT: %w", err)
	}
	if steamTimeout <= 0 {
		return Config{}, fmt.Errorf("STEAM_TIMEOUT must be > 0")
	}

	matchHistoryLimit, err := getEnvAsInt("MATCH_HISTORY_LIMIT", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_HISTORY_LIMIT: %w", err)
	}
	if matchHistoryLimit < 1 || matchHistoryLimit > 100 {
		return Config{}, fmt.Errorf("MATCH_HISTORY_LIMIT must be between 1 and 100")
	}
	matchHydrationWorkers, err := getEnvAsInt("MATCH_HYDRATION_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_HYDRATION_WORKERS: %w", err)
	}
	if matchHydrationWorkers < 1 {
		return Config{}, fmt.Errorf("MATCH_HYDRATION_WORKERS must be >= 1")
	}

	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 getEnv("APP_SERVICE_NAME", "faceit-scope-api"),
		ServiceVersion:              getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                    getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                       strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:     true,
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   pprofAddr,
		FaceitAPIKey:                strings.TrimSpace(getEnv("FACEIT_API_KEY", "")),
		FaceitBaseURL:               strings.TrimSpace(getEnv("FACEIT_BASE_URL", "https://open.faceit.com/data/v4")),
		FaceitGameID:                strings.TrimSpace(getEnv("FACEIT_GAME_ID", "cs2")),
		FaceitFallbackGameID:        strings.TrimSpace(getEnv("FACEIT_FALLBACK_GAME_ID", "csgo")),
		FaceitTimeout:               faceitTimeout,
		FaceitMaxRetries:            faceitMaxRetries,
		FaceitRateLimitMaxBackoff:   faceitRateLimitMaxBackoff,
		FaceitCircuitEnabled:        faceitCircuitEnabled,
		FaceitCircuitFailureCount:   faceitCircuitFailureCount,
		FaceitCircuitOpenTimeout:    faceitCircuitOpenTimeout,
		FaceitCircuitHalfOpenMaxReq: faceitCircuitHalfOpenMaxReq,
		SteamAPIKey:                 strings.TrimSpace(getEnv("STEAM_API_KEY", "")),
		SteamBaseURL:                strings.TrimSpace(getEnv("STEAM_BASE_URL", "https://api.steampowered.com")),
		SteamTimeout:                steamTimeout,
		MatchHistoryLimit:           matchHistoryLimit,
		MatchHydrationWorkers:       matchHydrationWorkers,
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		UptraceLogsEnabled:          uptraceLogsEnabled,
		UptraceCaptureRequestBody:   uptraceCaptureRequestBody,
		UptraceRequestBodyMaxBytes:  uptraceRequestBodyMaxBytes,
		BetterStackEnabled:          betterStackEnabled,
		BetterStackEndpoint:         betterStackEndpoint,
		BetterStackToken:            strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:          betterStackTimeout,
		BetterStackMinLevel:         betterStackMinLevel,
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeAuthToken:          strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:      strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:         pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.FaceitGameID == "" {
		return Config{}, fmt.Errorf("FACEIT_GAME_ID cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	logLevel := parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = logLevel

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
