package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds start-up settings. Environment variables provide the
// defaults and command-line flags override them.
type Config struct {
	Level       string  `env:"TOPDOWN_LEVEL"        envDefault:"village"`
	Debug       bool    `env:"TOPDOWN_DEBUG"`
	HotReload   bool    `env:"TOPDOWN_HOT_RELOAD"`
	QuestFlag   string  `env:"TOPDOWN_QUEST_FLAG"   envDefault:"$QuestComplete_BigDemon"`
	WindowTitle string  `env:"TOPDOWN_WINDOW_TITLE" envDefault:"topdown"`
	SpeedScale  float64 `env:"TOPDOWN_SPEED_SCALE"  envDefault:"1"`
	BaseMonitor bool    `env:"TOPDOWN_BASE_MONITOR"`
}

// Load reads the environment and then applies args as flags.
func Load(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	fs := flag.NewFlagSet("topdown", flag.ContinueOnError)
	fs.StringVar(&cfg.Level, "level", cfg.Level, "level name in levels/ (basename, .json optional)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "draw physics shapes and interaction state")
	fs.BoolVar(&cfg.HotReload, "hot", cfg.HotReload, "reload prefabs and dialogue from disk when they change")
	fs.StringVar(&cfg.QuestFlag, "quest-flag", cfg.QuestFlag, "dialogue variable set by the quest debug key")
	fs.StringVar(&cfg.WindowTitle, "title", cfg.WindowTitle, "window title")
	fs.Float64Var(&cfg.SpeedScale, "speed", cfg.SpeedScale, "player speed multiplier")
	fs.BoolVar(&cfg.BaseMonitor, "m", cfg.BaseMonitor, "use base monitor instead of primary (for multi-monitor setups)")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parse flags: %w", err)
	}

	if cfg.SpeedScale <= 0 {
		return Config{}, fmt.Errorf("config: speed must be positive, got %v", cfg.SpeedScale)
	}
	return cfg, nil
}
