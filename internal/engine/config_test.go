package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadTuning_EmptyPathGivesDefaults(t *testing.T) {
	tuning, err := LoadTuning("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tuning.TickRateHz != 30 {
		t.Errorf("tick_rate_hz = %d, want 30", tuning.TickRateHz)
	}
	if tuning.AvatarSpeed != 0.15 {
		t.Errorf("avatar_speed = %v, want 0.15", tuning.AvatarSpeed)
	}
	if tuning.ReplayDir != "replays" {
		t.Errorf("replay_dir = %q, want replays", tuning.ReplayDir)
	}
	if tuning.MaxSessions != 64 {
		t.Errorf("max_sessions = %d, want 64", tuning.MaxSessions)
	}
}

func TestLoadTuning_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	body := "tick_rate_hz: 60\navatar_speed: 0.3\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	tuning, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tuning.TickRateHz != 60 {
		t.Errorf("tick_rate_hz = %d, want 60", tuning.TickRateHz)
	}
	if tuning.AvatarSpeed != 0.3 {
		t.Errorf("avatar_speed = %v, want 0.3", tuning.AvatarSpeed)
	}
	// Незаданные поля остаются дефолтными
	if tuning.ReplayDir != "replays" {
		t.Errorf("replay_dir = %q, want default", tuning.ReplayDir)
	}
}

func TestLoadTuning_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero tick rate", "tick_rate_hz: 0\n"},
		{"negative speed", "avatar_speed: -0.1\n"},
		{"not yaml", "{{{{\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tuning.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadTuning(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadTuning_MissingFileIsError(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTickInterval(t *testing.T) {
	tuning := NewTuning()
	if got := tuning.TickInterval(); got != time.Second/30 {
		t.Errorf("tick interval = %v, want %v", got, time.Second/30)
	}
}
