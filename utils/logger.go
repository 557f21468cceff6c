package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/awantoch/kwanixflow/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Two sinks: the user logger prints CLI results (previews, exported paths)
// to stdout, the internal zap logger carries diagnostics to stderr.
var (
	mu         sync.RWMutex
	userLogger = log.New(os.Stdout, "", 0)
	internal   *zap.SugaredLogger
	level      = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

func init() {
	if os.Getenv(constants.EnvDebug) != "" {
		level.SetLevel(zapcore.DebugLevel)
	}
	internal = newSugar(zapcore.Lock(os.Stderr), zapcore.CapitalColorLevelEncoder, level)
}

func newSugar(w zapcore.WriteSyncer, enc zapcore.LevelEncoder, lvl zapcore.LevelEnabler) *zap.SugaredLogger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = enc
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), w, lvl)).Sugar()
}

func sugar() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return internal
}

// User prints a message meant for the person running the CLI.
func User(format string, v ...any) {
	mu.RLock()
	l := userLogger
	mu.RUnlock()
	l.Printf(format, v...)
}

func Info(format string, v ...any)  { sugar().Infof(format, v...) }
func Warn(format string, v ...any)  { sugar().Warnf(format, v...) }
func Error(format string, v ...any) { sugar().Errorf(format, v...) }
func Debug(format string, v ...any) { sugar().Debugf(format, v...) }

// SetUserOutput redirects User output; nil restores stdout.
func SetUserOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	mu.Lock()
	userLogger = log.New(w, "", 0)
	mu.Unlock()
}

// SetInternalOutput redirects diagnostics to w at debug level, so tests can
// assert on every line. nil restores stderr at the configured level.
func SetInternalOutput(w io.Writer) {
	var l *zap.SugaredLogger
	if w == nil || w == os.Stderr {
		l = newSugar(zapcore.Lock(os.Stderr), zapcore.CapitalColorLevelEncoder, level)
	} else {
		l = newSugar(zapcore.AddSync(w), zapcore.CapitalLevelEncoder, zapcore.DebugLevel)
	}
	mu.Lock()
	internal = l
	mu.Unlock()
}

// SetMode switches between "debug" and "production" logging.
func SetMode(mode string) {
	if mode == "debug" {
		SetLevel("debug")
		return
	}
	SetLevel("info")
}

// SetLevel applies a level name from config (debug, info, warn, error).
// Unknown names leave the level unchanged.
func SetLevel(name string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		Warn("unknown log level %q", name)
		return
	}
	level.SetLevel(l)
}

// Level reports the current level name.
func Level() string {
	return level.Level().String()
}

// Logger returns the structured logger behind the package helpers, for
// components that take a *zap.Logger directly.
func Logger() *zap.Logger {
	return sugar().Desugar()
}

// Errorf logs the error message and returns it as an error value.
func Errorf(format string, v ...any) error {
	err := fmt.Errorf(format, v...)
	sugar().Errorf("%s", err)
	return err
}

// LoggerWriter adapts a printf-style log function to io.Writer, one call per
// non-blank line. http.Server.ErrorLog writes through it.
type LoggerWriter struct {
	Fn     func(string, ...any)
	Prefix string
}

func (w *LoggerWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		w.Fn("%s%s", w.Prefix, line)
	}
	return len(p), nil
}

// WithRequestID returns a new context with the given request ID.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, requestIDKey, reqID)
}

// RequestIDFromContext extracts the request ID from context, if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(requestIDKey).(string)
	return s, ok
}

func ctxFields(ctx context.Context, fields []any) []any {
	if reqID, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", reqID)
	}
	return fields
}

func InfoCtx(ctx context.Context, msg string, fields ...any) {
	sugar().Infow(msg, ctxFields(ctx, fields)...)
}

func WarnCtx(ctx context.Context, msg string, fields ...any) {
	sugar().Warnw(msg, ctxFields(ctx, fields)...)
}

func ErrorCtx(ctx context.Context, msg string, fields ...any) {
	sugar().Errorw(msg, ctxFields(ctx, fields)...)
}

func DebugCtx(ctx context.Context, msg string, fields ...any) {
	sugar().Debugw(msg, ctxFields(ctx, fields)...)
}
