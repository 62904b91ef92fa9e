// Package config provides configuration management for the inputhook daemon.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"inputhook/internal/hotkey"
	"inputhook/internal/logging"
)

// Config represents the daemon configuration
type Config struct {
	Log     LogConfig     `json:"log"`
	API     APIConfig     `json:"api"`
	Stream  StreamConfig  `json:"stream"`
	Tray    TrayConfig    `json:"tray"`
	Capture CaptureConfig `json:"capture"`
}

// LogConfig selects the diagnostic threshold and output format
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `json:"level"`

	// Format is json, console or text
	Format string `json:"format"`
}

// APIConfig controls the HTTP control surface
type APIConfig struct {
	Enabled bool `json:"enabled"`

	// Addr is the listen address (e.g., "127.0.0.1:18090")
	Addr string `json:"addr"`

	// Token is an optional bearer token required on every request
	Token string `json:"token,omitempty"`
}

// StreamConfig controls the WebSocket event stream
type StreamConfig struct {
	// Format is "json" (protocol.Message) or "binary" (protocol frames)
	Format string `json:"format"`

	// Buffer is the capacity of the hand-off queue between the capture thread and the subscriber
	Buffer int `json:"buffer"`
}

// TrayConfig controls the system tray
type TrayConfig struct {
	Enabled bool `json:"enabled"`
}

// CaptureConfig controls what the daemon does with captured events
type CaptureConfig struct {
	// Echo prints every captured event to stdout
	Echo bool `json:"echo"`

	// AutoStart starts capture as soon as the daemon runs
	AutoStart bool `json:"auto_start"`

	// StopHotkey stops capture when held (e.g. "Ctrl+Alt+Shift+Escape"); empty disables it
	StopHotkey string `json:"stop_hotkey,omitempty"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		API: APIConfig{
			Enabled: true,
			Addr:    "127.0.0.1:18090",
		},
		Stream: StreamConfig{
			Format: "json",
			Buffer: 1024,
		},
		Tray: TrayConfig{
			Enabled: false,
		},
		Capture: CaptureConfig{
			Echo:       false,
			AutoStart:  true,
			StopHotkey: "Ctrl+Alt+Shift+Escape",
		},
	}
}

// Validate checks every enumerated field and the stream buffer size.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "json", "console", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	switch c.Stream.Format {
	case "json", "binary":
	default:
		errs = append(errs, fmt.Errorf("stream.format: unknown format %q", c.Stream.Format))
	}
	if c.Stream.Buffer <= 0 {
		errs = append(errs, fmt.Errorf("stream.buffer: must be positive, got %d", c.Stream.Buffer))
	}
	if c.Capture.StopHotkey != "" {
		if _, err := hotkey.Parse(c.Capture.StopHotkey); err != nil {
			errs = append(errs, fmt.Errorf("capture.stop_hotkey: %w", err))
		}
	}
	if c.API.Enabled && c.API.Addr == "" {
		errs = append(errs, errors.New("api.addr: required when the API is enabled"))
	}
	return errors.Join(errs...)
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  func()
}

// NewManager creates a configuration manager for path, or for the per-user default
// location when path is empty.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		var err error
		if path, err = getConfigPath(); err != nil {
			return nil, err
		}
	}

	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}, nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "inputhook")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "inputhook")
	default:
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(dir, "inputhook")
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Path returns the file the manager reads and writes.
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk. A missing file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()

	data, err := os.ReadFile(m.configPath)
	if errors.Is(err, os.ErrNotExist) {
		m.config = DefaultConfig()
		m.mu.Unlock()
		logging.Infof("config: %s not found, writing defaults", m.configPath)
		return m.Save()
	}
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("config: read %s: %w", m.configPath, err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("config: parse %s: %w", m.configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("config: %s: %w", m.configPath, err)
	}
	m.config = cfg
	onChanged := m.onChanged
	m.mu.Unlock()

	if onChanged != nil {
		onChanged()
	}
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	logging.Debugf("config: saving configuration to %s (%d bytes)", m.configPath, len(data))
	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.config
}

// Set validates and replaces the configuration
func (m *Manager) Set(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.config = &config
	onChanged := m.onChanged
	m.mu.Unlock()
	if onChanged != nil {
		onChanged()
	}
	return nil
}

// RegisterChangeCallback registers a function to be called when config changes
func (m *Manager) RegisterChangeCallback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}
