package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewZapLogger(t *testing.T) {
	tests := []struct {
		name      string
		opts      LoggerOpts
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{
			name:      "valid debug level",
			opts:      LoggerOpts{Level: "debug"},
			wantLevel: zapcore.DebugLevel,
		},
		{
			name:      "valid info level production",
			opts:      LoggerOpts{Level: "info", IsProduction: true, JSONConsole: true},
			wantLevel: zapcore.InfoLevel,
		},
		{
			name:      "none level",
			opts:      LoggerOpts{Level: "none"},
			wantLevel: zapcore.InvalidLevel,
		},
		{
			name:    "invalid level",
			opts:    LoggerOpts{Level: "invalid"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Output = &bytes.Buffer{}
			logger, level, err := NewZapLogger(tt.opts)

			if (err != nil) != tt.wantErr {
				t.Fatalf("NewZapLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if logger == nil {
				t.Fatal("NewZapLogger() logger is nil")
			}
			if level.Level() != tt.wantLevel {
				t.Errorf("NewZapLogger() level = %v, want %v", level.Level(), tt.wantLevel)
			}
		})
	}
}

func TestNewNoopLogger(t *testing.T) {
	logger := NewNoopLogger()

	if logger.Get() == nil {
		t.Fatal("NewNoopLogger().Get() returned nil")
	}
	// must not panic on a logger without a level
	logger.SetLevel(zapcore.DebugLevel)
}

func TestLogger_SetLevelStr(t *testing.T) {
	logger, err := NewLogger(LoggerOpts{Level: "info", Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	tests := []struct {
		name      string
		levelStr  string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"debug level", "debug", zapcore.DebugLevel, false},
		{"warn level", "warn", zapcore.WarnLevel, false},
		{"error level", "error", zapcore.ErrorLevel, false},
		{"invalid level", "invalid", zapcore.ErrorLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := logger.SetLevelStr(tt.levelStr)

			if (err != nil) != tt.wantErr {
				t.Errorf("SetLevelStr() error = %v, wantErr %v", err, tt.wantErr)
			}
			if logger.level.Level() != tt.wantLevel {
				t.Errorf("SetLevelStr() level = %v, want %v", logger.level.Level(), tt.wantLevel)
			}
		})
	}
}

func TestLoggerOutput(t *testing.T) {
	tests := []struct {
		name     string
		opts     LoggerOpts
		contains []string
	}{
		{
			name:     "console",
			opts:     LoggerOpts{Level: "info"},
			contains: []string{"INFO", "test message", `"category": "aiArt"`},
		},
		{
			name:     "json",
			opts:     LoggerOpts{Level: "info", IsProduction: true, JSONConsole: true},
			contains: []string{`"level":"info"`, `"msg":"test message"`, `"category":"aiArt"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.opts.Output = &buf

			logger, err := NewLogger(tt.opts)
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			logger.Get().Info("test message", zap.String("category", "aiArt"))

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output %q should contain %q", output, want)
				}
			}
			if strings.Contains(output, "\x1b[") {
				t.Errorf("non-terminal output should not be colored: %q", output)
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOpts{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	zapLogger := logger.Get()
	zapLogger.Debug("debug message")
	zapLogger.Info("info message")
	zapLogger.Warn("warn message")
	zapLogger.Error("error message")

	output := buf.String()
	for _, hidden := range []string{"debug message", "info message"} {
		if strings.Contains(output, hidden) {
			t.Errorf("%q should not appear with warn level", hidden)
		}
	}
	for _, shown := range []string{"warn message", "error message"} {
		if !strings.Contains(output, shown) {
			t.Errorf("%q should appear with warn level", shown)
		}
	}

	logger.SetLevel(zapcore.DebugLevel)
	zapLogger.Debug("late debug")
	if !strings.Contains(buf.String(), "late debug") {
		t.Error("debug message should appear after lowering the level")
	}
}

func TestIsTTY(t *testing.T) {
	if isTTY(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}

	f, err := os.CreateTemp(t.TempDir(), "log")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if isTTY(f) {
		t.Error("a regular file is not a terminal")
	}
}

func BenchmarkLoggerInfo(b *testing.B) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOpts{Level: "info", Output: &buf})
	if err != nil {
		b.Fatal(err)
	}

	zapLogger := logger.Get()

	for b.Loop() {
		zapLogger.Info("benchmark message")
		buf.Reset()
	}
}
