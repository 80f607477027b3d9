package config

import (
	"errors"
	"io"
	"os"
	"seotda-server/internal/util"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the seotda server
type Config struct {
	PGDSN          string        `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string        `yaml:"migrationsPath" envconfig:"migrations_path"`
	StartGameDelay time.Duration `yaml:"startGameDelay" envconfig:"start_game_delay"`
	JWT            struct {
		Secret string `yaml:"secret" envconfig:"secret"`
	} `yaml:"jwt"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Game struct {
		Capacity      int `yaml:"capacity" envconfig:"capacity"`
		MinPlayers    int `yaml:"minPlayers" envconfig:"min_players"`
		StartingChips int `yaml:"startingChips" envconfig:"starting_chips"`
		BaseBet       int `yaml:"baseBet" envconfig:"base_bet"`
	} `yaml:"game"`
	Rooms struct {
		// Open admits any room id when no database is configured
		Open     bool          `yaml:"open" envconfig:"open"`
		CacheTTL time.Duration `yaml:"cacheTtl" envconfig:"cache_ttl"`
	} `yaml:"rooms"`
}

var (
	config Config
	loaded bool
	lock   sync.Mutex
)

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	var c Config
	c.MigrationsPath = "./sql"
	c.StartGameDelay = 0
	c.Log.Level = "info"
	c.Game.Capacity = 4
	c.Game.MinPlayers = 2
	c.Game.StartingChips = 1000
	c.Game.BaseBet = 100
	c.Rooms.Open = true
	c.Rooms.CacheTTL = 30 * time.Second

	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	lock.Lock()
	defer lock.Unlock()

	if !loaded {
		c, err := load()
		if err != nil {
			panic(err)
		}

		config = c
		loaded = true
	}

	return config
}

// Load will (re)load the configuration
func Load() error {
	c, err := load()
	if err != nil {
		return err
	}

	lock.Lock()
	config = c
	loaded = true
	lock.Unlock()

	return nil
}

func load() (Config, error) {
	c := DefaultConfig()

	configFile := util.Getenv("SEOTDA_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	} else {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, err
		}
	}

	if err := envconfig.Process("seotda", &c); err != nil {
		return Config{}, err
	}

	return c, nil
}
