package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/simp-lee/logger"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SetupLogger builds the process logger from cfg and installs it as the
// slog default, so request middleware and ad hoc slog calls share one
// sink. The caller owns Close on the returned logger.
func SetupLogger(cfg *LogConfig) (*logger.Logger, error) {
	if cfg == nil {
		return nil, errors.New("log config is nil")
	}

	log, err := logger.New(BuildLoggerOpts(cfg)...)
	if err != nil {
		return nil, err
	}
	log.SetDefault()
	return log, nil
}

// BuildLoggerOpts translates cfg into logger options. Unrecognized level
// names mean info; unrecognized formats mean the logger's custom format.
// File output and its rotation settings are only emitted when a file
// path is set. A nil cfg yields nil.
func BuildLoggerOpts(cfg *LogConfig) []logger.Option {
	if cfg == nil {
		return nil
	}

	level, ok := logLevels[strings.ToLower(cfg.Level)]
	if !ok {
		level = slog.LevelInfo
	}

	var format logger.OutputFormat
	switch strings.ToLower(cfg.Format) {
	case "text":
		format = logger.FormatText
	case "json":
		format = logger.FormatJSON
	default:
		format = logger.FormatCustom
	}

	// Console color defaults on; an explicit false in the file wins.
	color := cfg.Color == nil || *cfg.Color

	opts := []logger.Option{
		logger.WithLevel(level),
		logger.WithMiddleware(logger.ContextMiddleware()),
		logger.WithConsoleFormat(format),
		logger.WithConsoleColor(color),
	}

	if cfg.FilePath == "" {
		return opts
	}

	opts = append(opts,
		logger.WithFilePath(cfg.FilePath),
		logger.WithFileFormat(format),
	)
	if cfg.MaxSizeMB > 0 {
		opts = append(opts, logger.WithMaxSizeMB(cfg.MaxSizeMB))
	}
	if cfg.RetentionDays > 0 {
		opts = append(opts, logger.WithRetentionDays(cfg.RetentionDays))
	}
	if cfg.MaxBackups > 0 {
		opts = append(opts, logger.WithMaxBackups(cfg.MaxBackups))
	}
	if cfg.CompressRotated != nil {
		opts = append(opts, logger.WithCompressRotated(*cfg.CompressRotated))
	}
	return opts
}
