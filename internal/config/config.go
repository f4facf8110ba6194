package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL     string
	Port            string
	S3Bucket        string
	S3Region        string
	CDNHost         string
	StorageFolders  []string
	MaxVideoSizeMB  int64
	StorageQuotaGB  int64
	RateLimitSubmit RateLimitConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           getEnv("PORT", "8080"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		CDNHost:        getEnv("CDN_HOST", "cdn.grovio.xyz"),
		StorageFolders: parseFolders(getEnv("STORAGE_FOLDERS", "videos/,websites/")),
	}

	maxVideo, err := parsePositiveInt64("MAX_VIDEO_SIZE_MB", getEnv("MAX_VIDEO_SIZE_MB", "100"))
	if err != nil {
		return nil, err
	}
	cfg.MaxVideoSizeMB = maxVideo

	quota, err := parsePositiveInt64("STORAGE_QUOTA_GB", getEnv("STORAGE_QUOTA_GB", "5"))
	if err != nil {
		return nil, err
	}
	cfg.StorageQuotaGB = quota

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SUBMIT", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SUBMIT value: %w", err)
	}
	cfg.RateLimitSubmit = rl

	return cfg, nil
}

// Validate checks the preconditions every write path depends on. It runs once
// at startup so individual handlers never re-check configuration.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.S3Bucket == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if c.CDNHost == "" {
		missing = append(missing, "CDN_HOST")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if len(c.StorageFolders) == 0 {
		return fmt.Errorf("STORAGE_FOLDERS must name at least one folder")
	}
	if c.MaxVideoSizeMB <= 0 {
		return fmt.Errorf("MAX_VIDEO_SIZE_MB must be positive")
	}
	return nil
}

// MaxVideoSizeBytes returns the upload limit in bytes.
func (c *Config) MaxVideoSizeBytes() int64 {
	return c.MaxVideoSizeMB << 20
}

// StorageQuotaBytes returns the provider quota in bytes.
func (c *Config) StorageQuotaBytes() int64 {
	return c.StorageQuotaGB << 30
}

func parseFolders(value string) []string {
	parts := strings.Split(value, ",")
	folders := make([]string, 0, len(parts))
	for _, part := range parts {
		folder := strings.TrimSpace(part)
		if folder == "" {
			continue
		}
		if !strings.HasSuffix(folder, "/") {
			folder += "/"
		}
		folders = append(folders, folder)
	}
	return folders
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parsePositiveInt64(key, input string) (int64, error) {
	v, err := strconv.ParseInt(input, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s value: %q", key, input)
	}
	return v, nil
}
