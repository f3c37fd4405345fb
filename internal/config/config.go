// Package config loads the dashboard configuration from an optional YAML
// file overlaid with environment variables. Environment values win over file
// values; both win over defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime configuration of the dashboard service.
type Config struct {
	HTTPPort   int
	BackendURL string
	SQLiteDSN  string
	// PollInterval is the refresh cycle period.
	PollInterval time.Duration
	// CheckoutWindow is the look-ahead for the upcoming-checkouts list.
	CheckoutWindow time.Duration
	// CheckoutLimit caps the upcoming-checkouts list length.
	CheckoutLimit int
	// RoomInspectionEstimate is the operator-supplied inspection count
	// surfaced in the task view; the backend exposes no inspection data,
	// so this is an explicit estimate rather than derived data.
	RoomInspectionEstimate int
}

// fileConfig mirrors Config with wire-friendly types for the YAML overlay.
type fileConfig struct {
	HTTPPort               *int    `yaml:"http_port"`
	BackendURL             *string `yaml:"backend_url"`
	SQLiteDSN              *string `yaml:"sqlite_dsn"`
	PollInterval           *string `yaml:"poll_interval"`
	CheckoutWindow         *string `yaml:"checkout_window"`
	CheckoutLimit          *int    `yaml:"checkout_limit"`
	RoomInspectionEstimate *int    `yaml:"room_inspection_estimate"`
}

// Load resolves the configuration from FRONTDESK_* environment variables and
// the optional YAML file named by FRONTDESK_CONFIG_PATH.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:       8090,
		SQLiteDSN:      "file:frontdesk.db",
		PollInterval:   60 * time.Second,
		CheckoutWindow: 2 * time.Hour,
		CheckoutLimit:  3,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if path := strings.TrimSpace(os.Getenv("FRONTDESK_CONFIG_PATH")); path != "" {
		if err := applyFile(path, &cfg, &invalid); err != nil {
			return Config{}, err
		}
	}

	if portValue := strings.TrimSpace(os.Getenv("FRONTDESK_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "FRONTDESK_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if url := strings.TrimSpace(os.Getenv("FRONTDESK_BACKEND_URL")); url != "" {
		cfg.BackendURL = url
	}
	if cfg.BackendURL == "" {
		missing = append(missing, "FRONTDESK_BACKEND_URL")
	}

	if dsn := strings.TrimSpace(os.Getenv("FRONTDESK_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if value := strings.TrimSpace(os.Getenv("FRONTDESK_POLL_INTERVAL")); value != "" {
		interval, err := time.ParseDuration(value)
		if err != nil || interval <= 0 {
			invalid = append(invalid, "FRONTDESK_POLL_INTERVAL")
		} else {
			cfg.PollInterval = interval
		}
	}

	if value := strings.TrimSpace(os.Getenv("FRONTDESK_CHECKOUT_WINDOW")); value != "" {
		window, err := time.ParseDuration(value)
		if err != nil || window <= 0 {
			invalid = append(invalid, "FRONTDESK_CHECKOUT_WINDOW")
		} else {
			cfg.CheckoutWindow = window
		}
	}

	if value := strings.TrimSpace(os.Getenv("FRONTDESK_CHECKOUT_LIMIT")); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil || limit <= 0 {
			invalid = append(invalid, "FRONTDESK_CHECKOUT_LIMIT")
		} else {
			cfg.CheckoutLimit = limit
		}
	}

	if value := strings.TrimSpace(os.Getenv("FRONTDESK_ROOM_INSPECTION_ESTIMATE")); value != "" {
		estimate, err := strconv.Atoi(value)
		if err != nil || estimate < 0 {
			invalid = append(invalid, "FRONTDESK_ROOM_INSPECTION_ESTIMATE")
		} else {
			cfg.RoomInspectionEstimate = estimate
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required configuration is not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("configuration values are invalid: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func applyFile(path string, cfg *Config, invalid *[]string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if file.HTTPPort != nil {
		if *file.HTTPPort <= 0 {
			*invalid = append(*invalid, "http_port")
		} else {
			cfg.HTTPPort = *file.HTTPPort
		}
	}
	if file.BackendURL != nil {
		cfg.BackendURL = strings.TrimSpace(*file.BackendURL)
	}
	if file.SQLiteDSN != nil {
		cfg.SQLiteDSN = strings.TrimSpace(*file.SQLiteDSN)
	}
	if file.PollInterval != nil {
		if interval, err := time.ParseDuration(*file.PollInterval); err == nil && interval > 0 {
			cfg.PollInterval = interval
		} else {
			*invalid = append(*invalid, "poll_interval")
		}
	}
	if file.CheckoutWindow != nil {
		if window, err := time.ParseDuration(*file.CheckoutWindow); err == nil && window > 0 {
			cfg.CheckoutWindow = window
		} else {
			*invalid = append(*invalid, "checkout_window")
		}
	}
	if file.CheckoutLimit != nil {
		if *file.CheckoutLimit <= 0 {
			*invalid = append(*invalid, "checkout_limit")
		} else {
			cfg.CheckoutLimit = *file.CheckoutLimit
		}
	}
	if file.RoomInspectionEstimate != nil {
		if *file.RoomInspectionEstimate < 0 {
			*invalid = append(*invalid, "room_inspection_estimate")
		} else {
			cfg.RoomInspectionEstimate = *file.RoomInspectionEstimate
		}
	}
	return nil
}
