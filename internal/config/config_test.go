package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.GameTimeLimit != 35*time.Minute {
		t.Errorf("GameTimeLimit = %v, want 35m", cfg.GameTimeLimit)
	}
	if len(cfg.PrizeLadder) != 15 {
		t.Errorf("PrizeLadder has %d levels, want 15", len(cfg.PrizeLadder))
	}
	if cfg.PrizeLadder[len(cfg.PrizeLadder)-1] != 1000000 {
		t.Errorf("top prize = %d, want 1000000", cfg.PrizeLadder[len(cfg.PrizeLadder)-1])
	}
	if len(cfg.CheckpointLevels) != 3 {
		t.Errorf("CheckpointLevels = %v, want 3 entries", cfg.CheckpointLevels)
	}
	if cfg.FriendAccuracy != 0.8 {
		t.Errorf("FriendAccuracy = %v, want 0.8", cfg.FriendAccuracy)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GAME_TIME_LIMIT", "10m")
	t.Setenv("PRIZE_LADDER", "100, 200, 400, 800")
	t.Setenv("CHECKPOINT_LEVELS", "2,4")
	t.Setenv("FRIEND_ACCURACY", "0.5")

	cfg := Load()

	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort = %q, want 9000", cfg.ServerPort)
	}
	if cfg.GameTimeLimit != 10*time.Minute {
		t.Errorf("GameTimeLimit = %v, want 10m", cfg.GameTimeLimit)
	}
	want := []int{100, 200, 400, 800}
	if len(cfg.PrizeLadder) != len(want) {
		t.Fatalf("PrizeLadder = %v, want %v", cfg.PrizeLadder, want)
	}
	for i, prize := range want {
		if cfg.PrizeLadder[i] != prize {
			t.Errorf("PrizeLadder[%d] = %d, want %d", i, cfg.PrizeLadder[i], prize)
		}
	}
	if len(cfg.CheckpointLevels) != 2 || cfg.CheckpointLevels[0] != 2 || cfg.CheckpointLevels[1] != 4 {
		t.Errorf("CheckpointLevels = %v, want [2 4]", cfg.CheckpointLevels)
	}
	if cfg.FriendAccuracy != 0.5 {
		t.Errorf("FriendAccuracy = %v, want 0.5", cfg.FriendAccuracy)
	}
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	t.Setenv("GAME_TIME_LIMIT", "soon")
	t.Setenv("PRIZE_LADDER", "100,not-a-number,400")
	t.Setenv("FRIEND_ACCURACY", "often")

	cfg := Load()

	if cfg.GameTimeLimit != 35*time.Minute {
		t.Errorf("GameTimeLimit = %v, want default", cfg.GameTimeLimit)
	}
	if len(cfg.PrizeLadder) != len(DefaultPrizeLadder) {
		t.Errorf("PrizeLadder = %v, want default ladder", cfg.PrizeLadder)
	}
	if cfg.FriendAccuracy != 0.8 {
		t.Errorf("FriendAccuracy = %v, want default", cfg.FriendAccuracy)
	}
}
