// Package logger builds the zap logger shared by the CLI and the server.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

type LoggerOpts struct {
	Level        string
	IsProduction bool
	JSONConsole  bool // Whether to use JSON encoding for the console output
	// Output receives log lines. Defaults to stderr so stdout only carries
	// generated text.
	Output io.Writer
}

// Use zap WrapCore if interface is required
func NewZapLogger(opts LoggerOpts) (*zap.Logger, zap.AtomicLevel, error) {
	if opts.Level == "none" {
		return zap.NewNop(), zap.NewAtomicLevelAt(zapcore.InvalidLevel), nil
	}
	level, err := zap.ParseAtomicLevel(opts.Level)
	if err != nil {
		return nil, level, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var ecfg zapcore.EncoderConfig
	if opts.IsProduction {
		ecfg = zap.NewProductionEncoderConfig()
	} else {
		ecfg = zap.NewDevelopmentEncoderConfig()
	}
	ecfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var core zapcore.Core
	if opts.JSONConsole {
		core = consoleJSONEncoder(ecfg, level, out)
	} else {
		core = consoleEncoder(ecfg, level, out)
	}
	return zap.New(core), level, nil
}

// Core to write pretty output, colored only when out is a terminal
func consoleEncoder(ecfg zapcore.EncoderConfig, level zap.AtomicLevel, out io.Writer) zapcore.Core {
	if isTTY(out) {
		ecfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		ecfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(ecfg), zapcore.AddSync(out), level)
}

// Core to write only JSON
func consoleJSONEncoder(ecfg zapcore.EncoderConfig, level zap.AtomicLevel, out io.Writer) zapcore.Core {
	return zapcore.NewCore(zapcore.NewJSONEncoder(ecfg), zapcore.AddSync(out), level)
}

type Logger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// New wrapped Zap logger.
func NewLogger(opts LoggerOpts) (Logger, error) {
	logger, level, err := NewZapLogger(opts)
	return Logger{logger, level}, err
}

func NewNoopLogger() Logger {
	return Logger{logger: zap.NewNop(), level: zap.NewAtomicLevelAt(zapcore.InvalidLevel)}
}

// Return usable Zap logger.
func (l Logger) Get() *zap.Logger {
	return l.logger
}

// Change the log level at runtime
func (l Logger) SetLevel(level zapcore.Level) {
	l.level.SetLevel(level)
}

// Change the log level at runtime
func (l Logger) SetLevelStr(input string) error {
	level, err := zap.ParseAtomicLevel(input)
	if err != nil {
		return err
	}
	l.level.SetLevel(level.Level())
	return nil
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
