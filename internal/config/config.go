package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Host         string   `validate:"required"`
	Port         int      `validate:"min=1,max=65535"`
	AllowOrigins []string `validate:"min=1"`
	LogLevel     string
	LogFile      string
	MaxUploadMB  int `validate:"min=1"`

	CatalogPath          string `validate:"required"`
	CatalogHeaderRow     int    `validate:"min=1"`
	PendingShipmentsPath string

	MatchThreshold         int `validate:"min=0,max=100"`
	ConsolidationThreshold int `validate:"min=0,max=100"`
	BatchWorkers           int `validate:"min=1,max=64"`

	RateLimitRPS   float64 `validate:"gte=0"`
	RateLimitBurst int     `validate:"min=1"`
}

// Load reads the environment, seeded from .env when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         atoi(getenv("PORT", "8082")),
		AllowOrigins: splitCSV(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFile:      getenv("LOG_FILE", "logs/order-intake.log"),
		MaxUploadMB:  atoi(getenv("MAX_UPLOAD_MB", "16")),

		CatalogPath:          getenv("CATALOG_PATH", "data/catalog.csv"),
		CatalogHeaderRow:     atoi(getenv("CATALOG_HEADER_ROW", "1")),
		PendingShipmentsPath: getenv("PENDING_SHIPMENTS_PATH", ""),

		MatchThreshold:         atoi(getenv("MATCH_THRESHOLD", "90")),
		ConsolidationThreshold: atoi(getenv("CONSOLIDATION_THRESHOLD", "90")),
		BatchWorkers:           atoi(getenv("BATCH_WORKERS", "4")),

		RateLimitRPS:   atof(getenv("RATE_LIMIT_RPS", "20")),
		RateLimitBurst: atoi(getenv("RATE_LIMIT_BURST", "40")),
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// нечисловое значение → -1, чтобы валидатор его отбраковал
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1
	}
	return n
}

func atof(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return -1
	}
	return f
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
