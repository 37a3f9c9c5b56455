// Package prefs persists player-facing preferences and run records in
// the user's config directory. Nothing here affects run determinism.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Prefs wraps the viper store backing ~/.corridors/config.yaml.
type Prefs struct {
	v    *viper.Viper
	path string
}

// Load reads preferences, creating defaults when no file exists yet.
func Load() (*Prefs, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}
	return LoadDir(filepath.Join(home, ".corridors"))
}

// LoadDir reads preferences from an explicit directory.
func LoadDir(dir string) (*Prefs, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("compact", false)
	v.SetDefault("save_dir", filepath.Join(dir, "saves"))
	v.SetDefault("runs_played", 0)
	v.SetDefault("runs_won", 0)
	v.SetDefault("best_time_ms", int64(0))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("prefs: read config: %w", err)
		}
	}
	return &Prefs{v: v, path: filepath.Join(dir, "config.yaml")}, nil
}

// SaveDir is where resume-code files are written.
func (p *Prefs) SaveDir() string { return p.v.GetString("save_dir") }

// Compact toggles the condensed status bar.
func (p *Prefs) Compact() bool { return p.v.GetBool("compact") }

func (p *Prefs) SetCompact(on bool) { p.v.Set("compact", on) }

// RunsPlayed is the lifetime run counter.
func (p *Prefs) RunsPlayed() int { return p.v.GetInt("runs_played") }

// RunsWon is the lifetime victory counter.
func (p *Prefs) RunsWon() int { return p.v.GetInt("runs_won") }

// BestTimeMs is the fastest victorious run, 0 when none yet.
func (p *Prefs) BestTimeMs() int64 { return p.v.GetInt64("best_time_ms") }

// RecordRunStart bumps the lifetime run counter.
func (p *Prefs) RecordRunStart() {
	p.v.Set("runs_played", p.RunsPlayed()+1)
}

// RecordVictory bumps the win counter and keeps the best time. Returns
// true when the duration sets a new record.
func (p *Prefs) RecordVictory(durationMs int64) bool {
	p.v.Set("runs_won", p.RunsWon()+1)
	best := p.BestTimeMs()
	if durationMs > 0 && (best == 0 || durationMs < best) {
		p.v.Set("best_time_ms", durationMs)
		return true
	}
	return false
}

// Flush writes the store back to disk.
func (p *Prefs) Flush() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	if err := p.v.WriteConfigAs(p.path); err != nil {
		return fmt.Errorf("prefs: write config: %w", err)
	}
	return nil
}
