// Package config loads runechess settings from a YAML file and RUNECHESS_*
// environment variables.
package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"runechess/internal/arena"
	"runechess/internal/bot"
	"runechess/internal/game"
)

const (
	EnvPrefix = "RUNECHESS"
	FileName  = "runechess"
)

type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

type ArenaConfig struct {
	Games    int `mapstructure:"games" yaml:"games"`
	MaxPlies int `mapstructure:"max_plies" yaml:"max_plies"`
}

type Config struct {
	Game  game.Settings `mapstructure:"game" yaml:"game"`
	Bot   bot.Config    `mapstructure:"bot" yaml:"bot"`
	Log   LogConfig     `mapstructure:"log" yaml:"log"`
	Arena ArenaConfig   `mapstructure:"arena" yaml:"arena"`
}

func Default() Config {
	return Config{
		Game:  game.DefaultSettings(),
		Bot:   bot.DefaultConfig(),
		Log:   LogConfig{Level: "info"},
		Arena: ArenaConfig{Games: 1, MaxPlies: arena.DefaultMaxPlies},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("game.validate_moves", d.Game.ValidateMoves)
	v.SetDefault("game.validate_player_color", d.Game.ValidatePlayerColor)
	v.SetDefault("game.unlimited_spells", d.Game.UnlimitedSpells)
	v.SetDefault("game.enable_bot", d.Game.EnableBot)
	v.SetDefault("game.half_move_limit", d.Game.HalfMoveLimit)
	v.SetDefault("game.check_invariants", d.Game.CheckInvariants)

	v.SetDefault("bot.depth", d.Bot.Depth)
	v.SetDefault("bot.seed", d.Bot.Seed)
	v.SetDefault("bot.weights.material", d.Bot.Weights.Material)
	v.SetDefault("bot.weights.spell_bonus", d.Bot.Weights.SpellBonus)
	v.SetDefault("bot.weights.check_bonus", d.Bot.Weights.CheckBonus)
	v.SetDefault("bot.weights.mate_bonus", d.Bot.Weights.MateBonus)
	v.SetDefault("bot.weights.mobility", d.Bot.Weights.Mobility)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)

	v.SetDefault("arena.games", d.Arena.Games)
	v.SetDefault("arena.max_plies", d.Arena.MaxPlies)
}

// Load reads path, or ./runechess.yaml when path is empty and the file
// exists. Environment variables override both, e.g. RUNECHESS_BOT_DEPTH.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs error
	if c.Game.HalfMoveLimit < 0 {
		errs = multierror.Append(errs, fmt.Errorf("game.half_move_limit: must not be negative, got %d", c.Game.HalfMoveLimit))
	}
	if c.Bot.Depth < 1 {
		errs = multierror.Append(errs, fmt.Errorf("bot.depth: must be at least 1, got %d", c.Bot.Depth))
	}

	names := make([]string, 0, len(c.Bot.Weights.Material))
	for name := range c.Bot.Weights.Material {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := game.ParseUnitKind(name); !ok {
			errs = multierror.Append(errs, fmt.Errorf("bot.weights.material: unknown unit kind %q", name))
		}
		if c.Bot.Weights.Material[name] < 0 {
			errs = multierror.Append(errs, fmt.Errorf("bot.weights.material.%s: must not be negative", name))
		}
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Arena.Games < 1 {
		errs = multierror.Append(errs, fmt.Errorf("arena.games: must be at least 1, got %d", c.Arena.Games))
	}
	if c.Arena.MaxPlies < 1 {
		errs = multierror.Append(errs, fmt.Errorf("arena.max_plies: must be at least 1, got %d", c.Arena.MaxPlies))
	}
	return errs
}

// Write encodes c as YAML.
func Write(w io.Writer, c Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(enc.Close(), "encode config")
}

// WriteFile writes c to path. It refuses to replace an existing file unless
// force is set.
func WriteFile(path string, c Config, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := Write(f, c); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
