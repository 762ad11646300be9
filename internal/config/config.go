package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"lotomania/internal/cache"
	"lotomania/internal/checker"
	"lotomania/internal/generator"
	"lotomania/internal/results"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Results        results.Config
	Redis          cache.RedisConfig
	HistoryDSN     string
	HeuristicsFile string
	Seed           uint64
	GameCost       float64
	LatestTTL      time.Duration

	DataPath            string
	LogDir              string
	CacheDir            string
	HistoryPath         string
	EnableMermaidCharts bool
}

// RedisEnabled reports whether a shared Redis cache was configured.
func (c *AppConfig) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Executable directory first, so an installed binary finds its own .env
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Then the working directory
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))
	cacheDir := filepath.Join(dataPath, "cache")

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", cacheDir).Msg("Failed to create cache directory")
	}

	cfg := &AppConfig{
		Results: results.Config{
			BaseURL:         getEnv("RESULTS_BASE_URL", results.DefaultBaseURL),
			RequestInterval: time.Duration(getEnvInt("RESULTS_REQUEST_INTERVAL_MS", 1000)) * time.Millisecond,
			Timeout:         time.Duration(getEnvInt("RESULTS_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Redis: cache.RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		HistoryDSN:          getEnv("HISTORY_DSN", ""),
		HeuristicsFile:      getEnv("HEURISTICS_FILE", ""),
		Seed:                uint64(getEnvInt("LOTOMANIA_SEED", 0)),
		GameCost:            getEnvFloat("GAME_COST", checker.DefaultGameCost),
		LatestTTL:           time.Duration(getEnvInt("LATEST_TTL_MINUTES", 60)) * time.Minute,
		DataPath:            dataPath,
		LogDir:              logDir,
		CacheDir:            cacheDir,
		HistoryPath:         filepath.Join(dataPath, "history.jsonl"),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", true),
	}

	if cfg.LatestTTL <= 0 {
		cfg.LatestTTL = cache.DefaultLatestTTL
	}
	return cfg, nil
}

// Heuristics returns the generator tuning, overlaid from HeuristicsFile when set.
func (c *AppConfig) Heuristics() (generator.Heuristics, error) {
	if c.HeuristicsFile == "" {
		return generator.DefaultHeuristics(), nil
	}
	return LoadHeuristics(c.HeuristicsFile)
}

// LoadHeuristics reads a YAML file over the default heuristics. Keys absent
// from the file keep their defaults.
func LoadHeuristics(path string) (generator.Heuristics, error) {
	h := generator.DefaultHeuristics()

	data, err := os.ReadFile(path)
	if err != nil {
		return h, fmt.Errorf("read heuristics: %w", err)
	}
	if err := yaml.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("parse heuristics %s: %w", path, err)
	}
	if err := h.Validate(); err != nil {
		return h, fmt.Errorf("heuristics %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("population", h.Population).Int("generations", h.Generations).Msg("Loaded generator heuristics")
	return h, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric setting")
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric setting")
	}
	return fallback
}
