package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFromContext(t *testing.T) {
	t.Parallel()
	if FromContext(context.Background()) != DefaultLogger() {
		t.Errorf("empty context did not return the default logger")
	}
	logger := zap.NewNop().Sugar()
	ctx := WithLogger(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Errorf("context did not return the logger it carries")
	}
}

func TestLevelToZapLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		level    string
		expected zapcore.Level
	}{
		{name: "debug", level: "debug", expected: zapcore.DebugLevel},
		{name: "upper case", level: "WARN", expected: zapcore.WarnLevel},
		{name: "warning", level: "warning", expected: zapcore.WarnLevel},
		{name: "error", level: " error ", expected: zapcore.ErrorLevel},
		{name: "unknown", level: "chatty", expected: zapcore.InfoLevel},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := levelToZapLevel(test.level); got != test.expected {
				t.Errorf("level got: %v, expected: %v", got, test.expected)
			}
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	t.Parallel()
	logger := NewLogger("error", true)
	if logger.Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Errorf("error level logger has info enabled")
	}
	if !logger.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Errorf("error level logger has error disabled")
	}
}
