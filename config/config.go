package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/zoec98/imageedit/imagegen"
)

const (
	DefaultDatabaseFilename = "imageedit.sqlite3"
	DefaultCleanCopySuffix  = "_clean"
)

const (
	defaultPruneWorkers        = 10
	defaultProbeTimeoutSeconds = 2
)

type Config struct {
	// storage directories
	AssetsDir  string
	PromptsDir string
	StylesDir  string

	// database path, resolved relative to AssetsDir unless overridden
	DatabasePath string

	// prune sweep settings
	PruneWorkers  int
	ProbeTimeout  time.Duration
	PruneInterval time.Duration // 0 = single sweep at startup

	// generation provider settings
	StartupModel string
	FalKey       string
	FalBaseURL   string

	// asset archiving
	SaveCleanCopy bool
	CleanCopyDir  string

	// http server
	ListenAddr string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvBool(envVar string) bool {
	switch os.Getenv(envVar) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func LoadConfig() (Config, error) {
	assets := getEnvOrDefault("ASSETS_DIR", "assets")
	absAssets, err := filepath.Abs(assets)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for assets directory '%s': %w", assets, err)
	}

	prompts := getEnvOrDefault("PROMPTS_DIR", "prompts")
	absPrompts, err := filepath.Abs(prompts)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for prompts directory '%s': %w", prompts, err)
	}

	styles := getEnvOrDefault("STYLES_DIR", "styles")
	absStyles, err := filepath.Abs(styles)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for styles directory '%s': %w", styles, err)
	}

	dbPath := getEnvOrDefault("DATABASE_PATH", filepath.Join(absAssets, DefaultDatabaseFilename))

	startupModel := os.Getenv("STARTUP_MODEL")
	if _, err := imagegen.LookupModel(startupModel); err != nil {
		return Config{}, fmt.Errorf("STARTUP_MODEL: %w", err)
	}

	cfg := Config{
		AssetsDir:     absAssets,
		PromptsDir:    absPrompts,
		StylesDir:     absStyles,
		DatabasePath:  dbPath,
		PruneWorkers:  getEnvIntOrDefault("PRUNE_WORKERS", defaultPruneWorkers),
		ProbeTimeout:  time.Duration(getEnvIntOrDefault("PRUNE_TIMEOUT_SECONDS", defaultProbeTimeoutSeconds)) * time.Second,
		PruneInterval: time.Duration(getEnvIntOrDefault("PRUNE_INTERVAL_MINUTES", 0)) * time.Minute,
		StartupModel:  startupModel,
		FalKey:        os.Getenv("FAL_KEY"),
		FalBaseURL:    getEnvOrDefault("FAL_BASE_URL", imagegen.DefaultFalBaseURL),
		SaveCleanCopy: getEnvBool("SAVE_CLEAN_COPY"),
		CleanCopyDir:  absAssets + DefaultCleanCopySuffix,
		ListenAddr:    getEnvOrDefault("LISTEN_ADDR", ":8080"),
	}

	return cfg, nil
}
