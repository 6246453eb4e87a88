// Package logging builds the zap logger used for diagnostics. Logs always
// go to stderr; stdout carries status lines and the linter's own output.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLevel names the environment variable overriding the log level.
const EnvLevel = "ECHECK_LOG_LEVEL"

// New returns a console logger writing to w. The level is debug when debug
// is set, otherwise taken from ECHECK_LOG_LEVEL and defaulting to warn.
func New(w io.Writer, debug bool) *zap.Logger {
	level := zap.NewAtomicLevelAt(detectLevel(debug))

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	encoderCfg.CallerKey = ""
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Named("echeck")
}

func detectLevel(debug bool) zapcore.Level {
	if debug {
		return zapcore.DebugLevel
	}

	raw := strings.TrimSpace(os.Getenv(EnvLevel))
	if raw == "" {
		return zapcore.WarnLevel
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(raw))); err != nil {
		return zapcore.WarnLevel
	}
	return lvl
}
