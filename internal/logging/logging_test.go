package logging

import "testing"

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LogLevel(99), "unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestGetLevelStable(t *testing.T) {
	// The level is initialized once per process; repeated queries must agree.
	first := GetLevel()
	for i := 0; i < 10; i++ {
		if got := GetLevel(); got != first {
			t.Fatalf("GetLevel changed between calls: %s then %s", first, got)
		}
	}
}

func TestLogFunctionsDoNotPanic(t *testing.T) {
	Debug("debug %s", "message")
	Info("info %s", "message")
	Warn("warn %s", "message")
	Error("error %s", "message")
}
