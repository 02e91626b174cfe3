package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rinkside/fantasy-hockey/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	CORSAllowedOrigins         []string
	SwaggerEnabled             bool
	LogLevel                   logging.Level
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	NHLStatsBaseURL            string
	NHLWebBaseURL              string
	NHLSeason                  string
	NHLGameType                int
	NHLTimeout                 time.Duration
	NHLMaxRetries              int
	NHLCircuitEnabled          bool
	NHLCircuitFailureCount     int
	NHLCircuitOpenTimeout      time.Duration
	NHLCircuitHalfOpenMaxReq   int
	ESPNFantasyBaseURL         string
	ESPNFantasySeason          string
	ESPNFantasyTimeout         time.Duration
	NewsBaseURL                string
	NewsTimeout                time.Duration
	TableCacheTTL              time.Duration
	GameLogCacheTTL            time.Duration
	ScheduleCacheTTL           time.Duration
	StandingsCacheTTL          time.Duration
	NewsCacheTTL               time.Duration
	LeagueCacheTTL             time.Duration
	DisplayTimezone            string
	NameMatchThreshold         float64
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

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

	nhlSeason := strings.TrimSpace(getEnv("NHL_SEASON", "20252026"))
	if len(nhlSeason) != 8 {
		return Config{}, fmt.Errorf("NHL_SEASON must be an 8-digit season id like 20252026")
	}
	nhlGameType, err := getEnvAsInt("NHL_GAME_TYPE", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_GAME_TYPE: %w", err)
	}
	if nhlGameType < 1 || nhlGameType > 3 {
		return Config{}, fmt.Errorf("NHL_GAME_TYPE must be 1 (preseason), 2 (regular) or 3 (playoffs)")
	}
	nhlTimeout, err := time.ParseDuration(getEnv("NHL_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_TIMEOUT: %w", err)
	}
	if nhlTimeout <= 0 {
		return Config{}, fmt.Errorf("NHL_TIMEOUT must be > 0")
	}
	nhlMaxRetries, err := getEnvAsInt("NHL_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_MAX_RETRIES: %w", err)
	}
	if nhlMaxRetries < 0 {
		return Config{}, fmt.Errorf("NHL_MAX_RETRIES must be >= 0")
	}
	nhlCircuitEnabled, err := strconv.ParseBool(getEnv("NHL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_CIRCUIT_ENABLED: %w", err)
	}
	nhlCircuitFailureCount, err := getEnvAsInt("NHL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if nhlCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("NHL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	nhlCircuitOpenTimeout, err := time.ParseDuration(getEnv("NHL_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if nhlCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("NHL_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	nhlCircuitHalfOpenMaxReq, err := getEnvAsInt("NHL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if nhlCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("NHL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	espnSeason := strings.TrimSpace(getEnv("ESPN_FANTASY_SEASON", "2026"))
	espnTimeout, err := time.ParseDuration(getEnv("ESPN_FANTASY_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_FANTASY_TIMEOUT: %w", err)
	}
	if espnTimeout <= 0 {
		return Config{}, fmt.Errorf("ESPN_FANTASY_TIMEOUT must be > 0")
	}

	newsTimeout, err := time.ParseDuration(getEnv("NEWS_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NEWS_TIMEOUT: %w", err)
	}
	if newsTimeout <= 0 {
		return Config{}, fmt.Errorf("NEWS_TIMEOUT must be > 0")
	}

	tableCacheTTL, err := getEnvAsTTL("TABLE_CACHE_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	gameLogCacheTTL, err := getEnvAsTTL("GAMELOG_CACHE_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	scheduleCacheTTL, err := getEnvAsTTL("SCHEDULE_CACHE_TTL", "60s")
	if err != nil {
		return Config{}, err
	}
	standingsCacheTTL, err := getEnvAsTTL("STANDINGS_CACHE_TTL", "30m")
	if err != nil {
		return Config{}, err
	}
	newsCacheTTL, err := getEnvAsTTL("NEWS_CACHE_TTL", "15m")
	if err != nil {
		return Config{}, err
	}
	leagueCacheTTL, err := getEnvAsTTL("LEAGUE_CACHE_TTL", "5m")
	if err != nil {
		return Config{}, err
	}

	nameMatchThreshold, err := getEnvAsFloat("NAME_MATCH_THRESHOLD", 0.65)
	if err != nil {
		return Config{}, fmt.Errorf("parse NAME_MATCH_THRESHOLD: %w", err)
	}
	if nameMatchThreshold <= 0 || nameMatchThreshold > 1 {
		return Config{}, fmt.Errorf("NAME_MATCH_THRESHOLD must be in (0, 1]")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "fantasy-hockey-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:             swaggerEnabled,
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		NHLStatsBaseURL:            strings.TrimSpace(getEnv("NHL_STATS_BASE_URL", "https://api.nhle.com/stats/rest")),
		NHLWebBaseURL:              strings.TrimSpace(getEnv("NHL_WEB_BASE_URL", "https://api-web.nhle.com")),
		NHLSeason:                  nhlSeason,
		NHLGameType:                nhlGameType,
		NHLTimeout:                 nhlTimeout,
		NHLMaxRetries:              nhlMaxRetries,
		NHLCircuitEnabled:          nhlCircuitEnabled,
		NHLCircuitFailureCount:     nhlCircuitFailureCount,
		NHLCircuitOpenTimeout:      nhlCircuitOpenTimeout,
		NHLCircuitHalfOpenMaxReq:   nhlCircuitHalfOpenMaxReq,
		ESPNFantasyBaseURL:         strings.TrimSpace(getEnv("ESPN_FANTASY_BASE_URL", "https://lm-api-reads.fantasy.espn.com/apis/v3/games/fhl")),
		ESPNFantasySeason:          espnSeason,
		ESPNFantasyTimeout:         espnTimeout,
		NewsBaseURL:                strings.TrimSpace(getEnv("NEWS_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports/hockey/nhl")),
		NewsTimeout:                newsTimeout,
		TableCacheTTL:              tableCacheTTL,
		GameLogCacheTTL:            gameLogCacheTTL,
		ScheduleCacheTTL:           scheduleCacheTTL,
		StandingsCacheTTL:          standingsCacheTTL,
		NewsCacheTTL:               newsCacheTTL,
		LeagueCacheTTL:             leagueCacheTTL,
		DisplayTimezone:            strings.TrimSpace(getEnv("DISPLAY_TIMEZONE", "America/New_York")),
		NameMatchThreshold:         nameMatchThreshold,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
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

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsTTL(key, fallback string) (time.Duration, error) {
	ttl, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}

	return ttl, nil
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
