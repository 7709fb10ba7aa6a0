package config

import (
	"anchor/log"
	"anchor/placement"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	ConfigFileName = "config.json"
	configLockName = "config.lock"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".anchor"), nil
}

// Config represents the application configuration
type Config struct {
	// DefaultPlacement is the placement the playground starts with.
	DefaultPlacement string `json:"default_placement"`
	// MouseEnterDelay is the hover open delay in seconds.
	MouseEnterDelay float64 `json:"mouse_enter_delay"`
	// MouseLeaveDelay is the hover close delay in seconds.
	MouseLeaveDelay float64 `json:"mouse_leave_delay"`
	// Arrow draws an arrow on the popup edge facing the target.
	Arrow bool `json:"arrow"`
	// Motion plays an open/close transition around every open change.
	Motion bool `json:"motion"`
	// DefaultOpen opens the playground popup on startup.
	DefaultOpen bool `json:"default_open"`
	// PlacementsFile is a .json or .toml placement table merged over the
	// built-in placements. Relative paths are resolved against the config
	// directory.
	PlacementsFile string `json:"placements_file"`
	// Region is the overflow region the playground starts with.
	// Valid values: "visible", "scroll", "visibleFirst"
	Region string `json:"region"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultPlacement: "bottom",
		MouseEnterDelay:  0,
		MouseLeaveDelay:  0.1,
		Arrow:            true,
		Motion:           false,
		DefaultOpen:      true,
		Region:           string(placement.RegionVisible),
	}
}

// EnterDelay returns MouseEnterDelay as a duration.
func (c *Config) EnterDelay() time.Duration {
	return seconds(c.MouseEnterDelay)
}

// LeaveDelay returns MouseLeaveDelay as a duration.
func (c *Config) LeaveDelay() time.Duration {
	return seconds(c.MouseLeaveDelay)
}

// RegionPolicy parses Region, falling back to the visible region.
func (c *Config) RegionPolicy() placement.Region {
	r, err := placement.ParseRegion(c.Region)
	if err != nil {
		log.WarningLog.Printf("invalid region in config: %v", err)
		return placement.RegionVisible
	}
	return r
}

// PlacementsPath returns the absolute path of PlacementsFile, or "" if unset.
func (c *Config) PlacementsPath() (string, error) {
	if c.PlacementsFile == "" || filepath.IsAbs(c.PlacementsFile) {
		return c.PlacementsFile, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, c.PlacementsFile), nil
}

func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	// Acquire shared lock for reading
	lock := NewFileLock(configPath, configLockName)
	if err := lock.RLock(); err != nil {
		log.WarningLog.Printf("failed to acquire read lock: %v", err)
		// Continue without lock - better to have stale data than fail
	} else {
		defer lock.Unlock()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := writeConfig(configDir, defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	// Start from the defaults so fields missing from older files keep them.
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		// Log the error with more context about what failed
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("failed to parse config file at %s: %v\nConfig content preview: %s", configPath, err, preview)

		// Backup the corrupted config before falling back to defaults
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}

	return config
}

// SaveConfig saves the configuration to disk.
// This function acquires an exclusive lock to prevent concurrent writes.
func SaveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	lock := NewFileLock(filepath.Join(configDir, ConfigFileName), configLockName)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	return writeConfig(configDir, config)
}

// writeConfig writes the file without locking; callers hold the lock.
func writeConfig(configDir string, config *Config) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(configDir, ConfigFileName), data, 0644)
}
