package obslog

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
		"":      slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewReturnsLevelVarThatTracksLevel(t *testing.T) {
	logger, lv := New("text", "warn")
	if logger == nil {
		t.Fatalf("New returned nil logger")
	}
	if lv.Level() != slog.LevelWarn {
		t.Fatalf("LevelVar = %v, want warn", lv.Level())
	}
	lv.Set(slog.LevelDebug)
	if lv.Level() != slog.LevelDebug {
		t.Fatalf("LevelVar after Set = %v, want debug", lv.Level())
	}
}

func TestNewDefaultsToTextHandlerForUnknownFormat(t *testing.T) {
	logger, _ := New("bogus-format", "info")
	if logger == nil {
		t.Fatalf("New returned nil logger")
	}
}
