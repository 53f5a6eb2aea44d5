// Package config loads runtime configuration from the environment, after
// reading an optional .env file. Every field has a default so the server
// runs locally with no setup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the drawing host.
type Config struct {
	Addr              string        // ADDR
	Domains           []string      // DOMAINS: allowed WebSocket origins, comma separated
	CanvasWidth       int           // CANVAS_WIDTH
	CanvasHeight      int           // CANVAS_HEIGHT
	PaletteFile       string        // PALETTE_FILE: empty uses the built-in palette
	MaxBoards         int           // MAX_BOARDS
	MaxMessageSize    int           // MAX_MESSAGE_SIZE, bytes
	MessagesPerSecond float64       // MESSAGES_PER_SECOND, per connection
	BurstSize         int           // BURST_SIZE
	BoardIdleTimeout  time.Duration // BOARD_IDLE_TIMEOUT
}

const (
	envKeyAddr              = "ADDR"
	envKeyDomains           = "DOMAINS"
	envKeyCanvasWidth       = "CANVAS_WIDTH"
	envKeyCanvasHeight      = "CANVAS_HEIGHT"
	envKeyPaletteFile       = "PALETTE_FILE"
	envKeyMaxBoards         = "MAX_BOARDS"
	envKeyMaxMessageSize    = "MAX_MESSAGE_SIZE"
	envKeyMessagesPerSecond = "MESSAGES_PER_SECOND"
	envKeyBurstSize         = "BURST_SIZE"
	envKeyBoardIdleTimeout  = "BOARD_IDLE_TIMEOUT"
)

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from environment variables only.
func FromEnv() (Config, error) {
	var errs []error

	cfg := Config{
		Addr:              envOr(envKeyAddr, ":8080"),
		Domains:           splitList(os.Getenv(envKeyDomains)),
		PaletteFile:       os.Getenv(envKeyPaletteFile),
		CanvasWidth:       intOr(envKeyCanvasWidth, 800, &errs),
		CanvasHeight:      intOr(envKeyCanvasHeight, 600, &errs),
		MaxBoards:         intOr(envKeyMaxBoards, 100, &errs),
		MaxMessageSize:    intOr(envKeyMaxMessageSize, 4096, &errs),
		MessagesPerSecond: floatOr(envKeyMessagesPerSecond, 240, &errs),
		BurstSize:         intOr(envKeyBurstSize, 60, &errs),
		BoardIdleTimeout:  durationOr(envKeyBoardIdleTimeout, time.Hour, &errs),
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: expected a positive integer, got %q", key, v))
		return fallback
	}
	return n
}

func floatOr(key string, fallback float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: expected a positive number, got %q", key, v))
		return fallback
	}
	return f
}

func durationOr(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: expected a positive duration, got %q", key, v))
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
