package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls log level, format and where lines are written.
type Config struct {
	Level  string `env:"LEVEL" envDefault:"info"`   // trace, debug, info, warn, error
	Format string `env:"FORMAT" envDefault:"text"`  // text, json
	Output string `env:"OUTPUT" envDefault:"stdout"` // stdout, file, both

	// Rotation (lumberjack)
	Path       string `env:"PATH" envDefault:"./logs"`
	File       string `env:"FILE" envDefault:"app.log"`
	MaxSize    int    `env:"MAX_SIZE" envDefault:"100"` // MB
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"7"`
	MaxAge     int    `env:"MAX_AGE" envDefault:"7"` // days
	Compress   bool   `env:"COMPRESS" envDefault:"true"`
}

var (
	appLogger = logrus.New()
	mu        sync.RWMutex
)

// Init builds the application logger from cfg and installs it as the package logger.
func Init(cfg Config) (*logrus.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	appLogger = l
	mu.Unlock()
	return l, nil
}

// New creates a logrus logger without touching the package logger.
func New(cfg Config) (*logrus.Logger, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	var writers []io.Writer
	if cfg.Output == "" || cfg.Output == "stdout" || cfg.Output == "both" {
		writers = append(writers, os.Stdout)
	}
	if cfg.Output == "file" || cfg.Output == "both" {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Path, cfg.File),
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}
	l.SetOutput(io.MultiWriter(writers...))

	return l, nil
}

// Get returns the application logger.
func Get() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return appLogger
}

// WithRequest returns an entry tagged with the request id, method, path and caller ip.
func WithRequest(c *fiber.Ctx) *logrus.Entry {
	entry := Get().WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})

	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		entry = entry.WithField("request_id", rid)
	}
	return entry
}
