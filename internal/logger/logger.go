package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/config"
)

type ContextKey string

const (
	RequestIDKey ContextKey = "requestID"
	SessionIDKey ContextKey = "sessionID"
	UserIDKey    ContextKey = "userID"
	SiteSlugKey  ContextKey = "siteSlug"
)

var (
	appLogger *logrus.Logger
	mu        sync.Mutex
)

// Init configures the process logger. Calling it again replaces the logger.
func Init(cfg config.LogConfig) (*logrus.Logger, error) {
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
			CallerPrettyfier: shortCaller,
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  "2006-01-02 15:04:05.000",
			CallerPrettyfier: shortCaller,
		})
	}
	l.SetReportCaller(cfg.ReportCaller)

	var writers []io.Writer
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
	if cfg.Output != "file" {
		writers = append(writers, os.Stdout)
	}
	l.SetOutput(io.MultiWriter(writers...))

	mu.Lock()
	appLogger = l
	mu.Unlock()
	return l, nil
}

// shortCaller reports the bare function name and file:line.
func shortCaller(f *runtime.Frame) (string, string) {
	s := strings.Split(f.Function, ".")
	return s[len(s)-1], fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
}

// GetAppLogger returns the process logger, creating a stdout logger on first use.
func GetAppLogger() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	if appLogger == nil {
		appLogger = logrus.New()
		appLogger.SetOutput(os.Stdout)
	}
	return appLogger
}

// WithComponent returns an entry tagged with a component name.
func WithComponent(name string) *logrus.Entry {
	return GetAppLogger().WithField("component", name)
}

// WithContext returns an entry carrying the request-scoped fields found in ctx.
func WithContext(ctx context.Context, entry *logrus.Entry) *logrus.Entry {
	if entry == nil {
		entry = logrus.NewEntry(GetAppLogger())
	}
	if ctx == nil {
		return entry
	}
	fields := logrus.Fields{}
	for key, name := range map[ContextKey]string{
		RequestIDKey: "request_id",
		SessionIDKey: "session_id",
		UserIDKey:    "user_id",
		SiteSlugKey:  "site_slug",
	} {
		if v := ctx.Value(key); v != nil {
			fields[name] = v
		}
	}
	if len(fields) == 0 {
		return entry
	}
	return entry.WithFields(fields)
}

// Discard is used by tests and by components constructed without a logger.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
