package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger  = zap.NewNop()
	verbose bool
	stdout  io.Writer = os.Stdout
	stderr  io.Writer = os.Stderr
)

// Init opens <dir>/logs/scoopx.log as a JSON zap sink at the given level.
// Console output keeps working when the file cannot be opened.
func Init(dir, level string) error {
	p := filepath.Join(dir, "logs")
	if err := os.MkdirAll(p, 0o755); err != nil {
		return err
	}
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl),
		Encoding:          "json",
		EncoderConfig:     encoderConfig(),
		OutputPaths:       []string{filepath.Join(p, "scoopx.log")},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func Close() {
	_ = logger.Sync()
}

// L returns the file logger for structured fields.
func L() *zap.Logger { return logger }

// SetOutput redirects console output; used by tests.
func SetOutput(out, errOut io.Writer) {
	stdout = out
	stderr = errOut
}

func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func Info(msg string) {
	fmt.Fprintln(stdout, msg)
	logger.Info(text.StripEscape(msg))
}

func Success(msg string) {
	fmt.Fprintln(stdout, text.FgGreen.Sprint(msg))
	logger.Info(text.StripEscape(msg))
}

func Warn(msg string) {
	fmt.Fprintln(stderr, text.FgYellow.Sprint(msg))
	logger.Warn(text.StripEscape(msg))
}

func Error(msg string) {
	_, _ = fmt.Fprintln(stderr, text.FgRed.Sprint(msg))
	logger.Error(text.StripEscape(msg))
}

// SetVerbose toggles verbose output to stdout.
func SetVerbose(v bool) { verbose = v }

// Debug prints only when verbose mode is enabled.
func Debug(msg string) {
	logger.Debug(text.StripEscape(msg))
	if !verbose {
		return
	}
	fmt.Fprintln(stdout, text.FgHiBlack.Sprint(msg))
}
