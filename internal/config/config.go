package config

import (
	"errors"
	"os"
	"time"

	"shed-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// storage backends
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config provides configuration for the shed server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Storage        string `yaml:"storage" envconfig:"storage"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	} `yaml:"jwt"`
	Redis struct {
		Addr          string `yaml:"addr" envconfig:"addr"`
		DB            int    `yaml:"db" envconfig:"db"`
		ChannelPrefix string `yaml:"channelPrefix" envconfig:"channel_prefix"`
	} `yaml:"redis"`
	Game Game `yaml:"game"`
	Log  struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

// Game holds the rule switches and pacing for games
type Game struct {
	MinPlayers int `yaml:"minPlayers" envconfig:"min_players"`
	MaxPlayers int `yaml:"maxPlayers" envconfig:"max_players"`
	// BotDelay is the pause between consecutive bot turns, in milliseconds
	BotDelay int `yaml:"botDelay" envconfig:"bot_delay"`
	// TwoRank is "high" (3..A,2) or "low" (2..A)
	TwoRank string `yaml:"twoRank" envconfig:"two_rank"`
	// IllegalPlay is "pickup" or "reject"
	IllegalPlay string `yaml:"illegalPlay" envconfig:"illegal_play"`
	// IdleTimeout is how many seconds a game worker lingers without work
	IdleTimeout int `yaml:"idleTimeout" envconfig:"idle_timeout"`
}

// BotDelayDuration returns the bot delay as a duration
func (g Game) BotDelayDuration() time.Duration {
	return time.Millisecond * time.Duration(g.BotDelay)
}

// IdleTimeoutDuration returns the idle timeout as a duration
func (g Game) IdleTimeoutDuration() time.Duration {
	return time.Second * time.Duration(g.IdleTimeout)
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	c := Config{
		PGDSN:          "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath: "./sql",
		Storage:        StoragePostgres,
		Game: Game{
			MinPlayers:  4,
			MaxPlayers:  4,
			BotDelay:    1000,
			TwoRank:     "high",
			IllegalPlay: "pickup",
			IdleTimeout: 300,
		},
	}

	c.Redis.ChannelPrefix = "shed."
	c.Log.Level = "info"
	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; defaults and the environment still apply
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("SHED_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	} else {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("shed", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
