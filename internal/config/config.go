package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"kanban-cli/internal/store"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Filter  FilterConfig  `yaml:"filter" json:"filter"`
	Drag    DragConfig    `yaml:"drag" json:"drag"`
	Log     LogConfig     `yaml:"log" json:"log"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	TUI     TUIConfig     `yaml:"tui" json:"tui"`
}

type StorageConfig struct {
	// Backend is one of file, sqlite, redis, memory.
	Backend string `yaml:"backend" json:"backend"`
	// Path is the board file (file) or database (sqlite). Relative paths resolve against the
	// config dir; empty picks board.json or board.db.
	Path string `yaml:"path" json:"path"`
	// Key names the slot inside sqlite and redis.
	Key      string `yaml:"key" json:"key"`
	RedisURL string `yaml:"redis_url" json:"redisUrl"`
}

type FilterConfig struct {
	Debounce Duration `yaml:"debounce" json:"debounce"`
}

type DragConfig struct {
	LockCardsWhileFiltered bool `yaml:"lock_cards_while_filtered" json:"lockCardsWhileFiltered"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	// File receives logs while the TUI owns the terminal.
	File string `yaml:"file" json:"file"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode" or "ascii").
	Glyphs string `yaml:"glyphs" json:"glyphs"`
}

// Duration is a time.Duration written as a Go duration string ("150ms").
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Storage: StorageConfig{Backend: BackendSQLite, Key: store.DefaultSlotKey},
		Filter:  FilterConfig{Debounce: Duration(150 * time.Millisecond)},
		Log:     LogConfig{Level: "info", File: "kanban.log"},
		Server:  ServerConfig{Addr: "127.0.0.1:8080"},
		TUI:     TUIConfig{Glyphs: "unicode"},
	}
}

func ConfigDir() (string, error) {
	// Keeps unit tests from touching ~/.kanban.
	if v := strings.TrimSpace(os.Getenv("KANBAN_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kanban"), nil
}

func ConfigPath(dir string) string {
	return filepath.Join(dir, "config.yaml")
}

// Load reads config.yaml from dir. A missing file yields Default(); fields absent from the file
// keep their default values.
func Load(dir string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(ConfigPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", ConfigPath(dir), err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	case BackendRedis:
		if strings.TrimSpace(c.Storage.RedisURL) == "" {
			return errors.New("storage.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q (want file|sqlite|redis|memory)", c.Storage.Backend)
	}
	if c.Filter.Debounce <= 0 {
		return errors.New("filter.debounce must be positive")
	}
	return nil
}

// Save writes cfg to dir/config.yaml, keeping the previous file as config.yaml.bak.
func Save(dir string, cfg Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	path := ConfigPath(dir)
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		if err := store.WriteFileAtomic(path+".bak", prev, 0o600); err != nil {
			return fmt.Errorf("backup %s: %w", path, err)
		}
	}
	return store.WriteFileAtomic(path, b, 0o600)
}

// StoragePath is the board location for the file and sqlite backends, resolved against dir.
func (c Config) StoragePath(dir string) string {
	p := strings.TrimSpace(c.Storage.Path)
	if p == "" {
		switch c.Storage.Backend {
		case BackendFile:
			p = "board.json"
		case BackendSQLite:
			p = "board.db"
		default:
			return ""
		}
	}
	return ResolvePath(dir, p)
}

// ResolvePath makes a relative storage path absolute against dir.
func ResolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
