package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fossabot/short/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation policy for LOG_PATH files. Deliberately not configurable; one
// policy for every deployment keeps disk usage predictable.
const (
	rotateMaxSizeMB  = 100
	rotateMaxBackups = 3
	rotateMaxAgeDays = 28
)

// Setup builds the process logger from the LOG_* config surface and installs
// it as the slog default. With LOG_PATH set, records go to stdout and to a
// size-rotated file; otherwise stdout alone. LOG_FORMAT defaults to json in
// production and text everywhere else.
func Setup(cfg config.Config) (*slog.Logger, error) {
	out := io.Writer(os.Stdout)
	if cfg.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0755); err != nil {
			return nil, err
		}
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    rotateMaxSizeMB,
			MaxBackups: rotateMaxBackups,
			MaxAge:     rotateMaxAgeDays,
			Compress:   true,
		})
	}

	level := Level(cfg.LogLevel)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	format := cfg.LogFormat
	if format == "" && cfg.AppEnv == "production" {
		format = "json"
	}

	var log *slog.Logger
	if format == "json" {
		log = slog.New(slog.NewJSONHandler(out, opts))
	} else {
		log = slog.New(slog.NewTextHandler(out, opts))
	}

	slog.SetDefault(log)
	return log, nil
}

// Level maps a LOG_LEVEL string to a slog level. Unknown values mean info.
func Level(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
