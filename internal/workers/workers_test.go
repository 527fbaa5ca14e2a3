package workers

import (
	"runtime"
	"testing"
)

func TestCountMinimumOne(t *testing.T) {
	if got := Count(0.01, 0); got < 1 {
		t.Errorf("Expected at least 1 worker, got %d", got)
	}
}

func TestCountRespectsLimit(t *testing.T) {
	if got := Count(100.0, 3); got != 3 {
		t.Errorf("Expected limit of 3, got %d", got)
	}
}

func TestCountOverride(t *testing.T) {
	t.Setenv("COVER_WORKERS", "5")

	if got := Count(1.0, 0); got != 5 {
		t.Errorf("Expected override of 5, got %d", got)
	}
	if got := Count(1.0, 2); got != 2 {
		t.Errorf("Expected limit to cap override at 2, got %d", got)
	}
}

func TestCountInvalidOverrideIgnored(t *testing.T) {
	t.Setenv("COVER_WORKERS", "not-a-number")

	expected := runtime.GOMAXPROCS(0)
	if got := Count(1.0, 0); got != expected {
		t.Errorf("Expected %d workers, got %d", expected, got)
	}
}

func TestForIO(t *testing.T) {
	expected := 2 * runtime.GOMAXPROCS(0)
	if got := ForIO(0); got != expected {
		t.Errorf("Expected %d workers, got %d", expected, got)
	}
}
