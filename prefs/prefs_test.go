package prefs

import (
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	dir := t.TempDir()
	p, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Compact() {
		t.Error("compact should default off")
	}
	if p.SaveDir() != filepath.Join(dir, "saves") {
		t.Errorf("save dir = %q", p.SaveDir())
	}
	if p.RunsPlayed() != 0 || p.RunsWon() != 0 || p.BestTimeMs() != 0 {
		t.Error("counters should start at zero")
	}
}

func TestFlushAndReload(t *testing.T) {
	dir := t.TempDir()
	p, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p.SetCompact(true)
	p.RecordRunStart()
	p.RecordRunStart()
	if err := p.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	again, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !again.Compact() {
		t.Error("compact did not persist")
	}
	if again.RunsPlayed() != 2 {
		t.Errorf("runs played = %d, want 2", again.RunsPlayed())
	}
}

func TestRecordVictory_KeepsBestTime(t *testing.T) {
	p, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !p.RecordVictory(90_000) {
		t.Error("first victory should set the record")
	}
	if p.RecordVictory(120_000) {
		t.Error("slower run should not beat the record")
	}
	if !p.RecordVictory(60_000) {
		t.Error("faster run should beat the record")
	}
	if p.BestTimeMs() != 60_000 {
		t.Errorf("best = %d, want 60000", p.BestTimeMs())
	}
	if p.RunsWon() != 3 {
		t.Errorf("wins = %d, want 3", p.RunsWon())
	}
}
