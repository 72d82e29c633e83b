package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/beaten-by-the-market/krx-radar/internal/models"
)

// Common contains the DeepSearch and database parameters shared by every
// service.
type Common struct {
	DeepSearchBaseURL  string
	DeepSearchAPIKey   string
	DatabaseURL        string
	MaxRetries         int
	RetryDelay         time.Duration
	RequestTimeout     time.Duration
	RequestsPerSecond  float64
	InsecureSkipVerify bool
}

// API describes HTTP-layer configuration.
type API struct {
	Common
	BindAddr    string
	RosterTTL   time.Duration
	PageSize    int
	DetailCount int
}

// Refresher configures the roster rebuild job.
type Refresher struct {
	Common
	Workers  int
	Markets  []models.Market
	Interval time.Duration
}

// LoadAPI builds an API config from environment variables. A .env file in
// the working directory is honored when present.
func LoadAPI() (*API, error) {
	godotenv.Load()

	common, err := loadCommon()
	if err != nil {
		return nil, err
	}

	c := &API{
		Common:      common,
		BindAddr:    getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
		RosterTTL:   getDuration("API_ROSTER_TTL", "1h"),
		PageSize:    getInt("API_PAGE_SIZE", 100),
		DetailCount: getInt("API_DETAIL_COUNT", 50),
	}

	if c.PageSize <= 0 || c.PageSize > 100 {
		return nil, fmt.Errorf("API_PAGE_SIZE must be between 1 and 100")
	}
	if c.DetailCount <= 0 {
		return nil, fmt.Errorf("API_DETAIL_COUNT must be positive")
	}
	if c.RosterTTL <= 0 {
		return nil, fmt.Errorf("API_ROSTER_TTL must be positive")
	}

	return c, nil
}

// LoadRefresher builds a Refresher config from environment variables.
func LoadRefresher() (*Refresher, error) {
	godotenv.Load()

	common, err := loadCommon()
	if err != nil {
		return nil, err
	}

	c := &Refresher{
		Common:   common,
		Workers:  getInt("REFRESH_WORKERS", 10),
		Interval: getDuration("REFRESH_INTERVAL", "0s"),
	}

	markets, err := parseMarkets(getEnv("REFRESH_MARKETS", ""))
	if err != nil {
		return nil, err
	}
	c.Markets = markets

	if c.Workers <= 0 {
		return nil, fmt.Errorf("REFRESH_WORKERS must be positive")
	}
	if c.Interval < 0 {
		return nil, fmt.Errorf("REFRESH_INTERVAL cannot be negative")
	}

	return c, nil
}

func loadCommon() (Common, error) {
	c := Common{
		DeepSearchBaseURL:  getEnv("DEEPSEARCH_BASE_URL", "https://api.deepsearch.com/v1/compute"),
		DeepSearchAPIKey:   getEnv("DEEPSEARCH_API_KEY", ""),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MaxRetries:         getInt("DEEPSEARCH_MAX_RETRIES", 5),
		RetryDelay:         getDuration("DEEPSEARCH_RETRY_DELAY", "5s"),
		RequestTimeout:     getDuration("DEEPSEARCH_TIMEOUT", "30s"),
		RequestsPerSecond:  getFloat("DEEPSEARCH_RPS", 0),
		InsecureSkipVerify: getBool("DEEPSEARCH_INSECURE_SKIP_VERIFY", false),
	}

	if c.DeepSearchAPIKey == "" {
		return Common{}, fmt.Errorf("DEEPSEARCH_API_KEY must be set")
	}
	if c.DatabaseURL == "" {
		return Common{}, fmt.Errorf("DATABASE_URL must be set")
	}
	if c.MaxRetries <= 0 {
		return Common{}, fmt.Errorf("DEEPSEARCH_MAX_RETRIES must be positive")
	}
	if c.RetryDelay <= 0 {
		return Common{}, fmt.Errorf("DEEPSEARCH_RETRY_DELAY must be positive")
	}

	return c, nil
}

// parseMarkets parses a comma-separated board list. Empty means every board.
func parseMarkets(raw string) ([]models.Market, error) {
	if strings.TrimSpace(raw) == "" {
		return models.Markets(), nil
	}

	known := make(map[models.Market]struct{})
	for _, m := range models.Markets() {
		known[m] = struct{}{}
	}

	var out []models.Market
	for _, part := range splitAndTrim(raw) {
		m := models.Market(strings.ToUpper(part))
		if _, ok := known[m]; !ok {
			return nil, fmt.Errorf("REFRESH_MARKETS contains unknown market %q", part)
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return models.Markets(), nil
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
