package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	SaveDirectory string
	Theme         string
	FrameMS       int
	StepDegrees   float64
	MaxGears      int
	LogFile       string
	Confirmations bool
}

func defaultConfig() *Config {
	return &Config{
		Theme:         "classic",
		FrameMS:       16,
		StepDegrees:   2,
		Confirmations: true,
	}
}

// loadConfig reads ~/.geartrainrc. A missing or unreadable file gives the defaults.
func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}
	return loadConfigFrom(filepath.Join(homeDir, ".geartrainrc"))
}

func loadConfigFrom(configPath string) *Config {
	config := defaultConfig()

	file, err := os.Open(configPath)
	if err != nil {
		return config
	}
	defer file.Close()

	homeDir, _ := os.UserHomeDir()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "theme":
			config.Theme = strings.ToLower(value)
		case "frame_ms", "framems", "frame":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.FrameMS = n
			}
		case "step_degrees", "step", "speed":
			if f, err := strconv.ParseFloat(value, 64); err == nil && f != 0 {
				config.StepDegrees = f
			}
		case "max_gears", "maxgears":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				config.MaxGears = n
			}
		case "log_file", "logfile", "log":
			config.LogFile = expandPath(value, homeDir)
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		}
	}

	return config
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// GetSavePath places filename in the save directory, creating the directory if needed.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.SaveDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}
