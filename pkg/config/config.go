package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrisonrobin/morningtasks/pkg/annotation"
)

const (
	xdgAppName = "morningtasks"
	configFile = "config.json"
)

const (
	SourceGoogle      = "google"
	SourceTaskwarrior = "taskwarrior"
	SourceOrgmode     = "orgmode"
)

type Config struct {
	// Dir receives the daily logs and checkpoints.
	Dir         string   `json:"dir"`
	Email       string   `json:"email"`
	EmailPrefix string   `json:"email_prefix"`
	HoursPerDay float64  `json:"hours_per_day"`
	Sources     []string `json:"sources"`

	OrgFiles          []string `json:"org_files,omitempty"`
	TaskwarriorFilter []string `json:"taskwarrior_filter,omitempty"`

	MeetingCalendar string `json:"meeting_calendar"`
	MeetingList     string `json:"meeting_list"`

	RequestsPerSecond float64 `json:"requests_per_second"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Dir:               "~/morningtasks",
		EmailPrefix:       "Office/",
		HoursPerDay:       annotation.DefaultConfig().HoursPerDay,
		Sources:           []string{SourceGoogle},
		MeetingCalendar:   "primary",
		MeetingList:       "Meetings",
		RequestsPerSecond: 5,
	}
}

func GetXdgHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	xdgHome, err := GetXdgHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, configFile), nil
}

// Load reads the config at path, or the default location when path is empty.
// Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, or the default location when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

func (c *Config) Validate() error {
	if c.HoursPerDay <= 0 {
		return fmt.Errorf("hours_per_day must be positive, got %v", c.HoursPerDay)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive, got %v", c.RequestsPerSecond)
	}
	for _, s := range c.Sources {
		switch s {
		case SourceGoogle, SourceTaskwarrior, SourceOrgmode:
		default:
			return fmt.Errorf("unknown source %q", s)
		}
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	return nil
}

// AnnotationConfig returns the title grammar settings.
func (c *Config) AnnotationConfig() annotation.Config {
	cfg := annotation.DefaultConfig()
	cfg.HoursPerDay = c.HoursPerDay
	return cfg
}

// ResolvedDir returns Dir with a leading ~ expanded and made absolute.
func (c *Config) ResolvedDir() (string, error) {
	return ExpandPath(c.Dir)
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
