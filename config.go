package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	SaveDirectory     string
	Confirmations     bool
	ExportScale       float64
	FPS               int
	MaxSpeed          float64
	Margin            float64
	PlacementAttempts int
	Repulsion         bool
	RecolorOnBounce   bool
	Segmentation      SegmentPolicy
	Seed              []string
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory:     "",
		Confirmations:     true,
		ExportScale:       defaultExportScale,
		FPS:               defaultFPS,
		MaxSpeed:          defaultMaxSpeed,
		Margin:            defaultMargin,
		PlacementAttempts: defaultPlacementAttempts,
		Repulsion:         true,
		RecolorOnBounce:   true,
		Segmentation:      SegmentWords,
		Seed:              []string{"Graphic", "Design", "is my", "Passion"},
	}
}

func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}
	return loadConfigFrom(filepath.Join(homeDir, ".memefloatrc"), homeDir)
}

// loadConfigFrom reads a key = value file on top of the defaults. A missing
// file or a malformed value leaves the default in place.
func loadConfigFrom(configPath, homeDir string) *Config {
	config := defaultConfig()

	file, err := os.Open(configPath)
	if err != nil {
		return config
	}
	defer file.Close()

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
			if strings.HasPrefix(value, "~") && homeDir != "" {
				value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
			}
			if !filepath.IsAbs(value) {
				if absPath, err := filepath.Abs(value); err == nil {
					value = absPath
				}
			}
			config.SaveDirectory = value
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "exportscale", "export_scale", "scale":
			if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
				config.ExportScale = f
			}
		case "fps":
			if n, err := strconv.Atoi(value); err == nil && n > 0 && n <= 120 {
				config.FPS = n
			}
		case "maxspeed", "max_speed", "speed":
			if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
				config.MaxSpeed = f
			}
		case "margin":
			if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
				config.Margin = f
			}
		case "placementattempts", "placement_attempts", "attempts":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.PlacementAttempts = n
			}
		case "repulsion":
			config.Repulsion = strings.ToLower(value) == "true"
		case "recolor", "recolor_on_bounce", "recoloronbounce":
			config.RecolorOnBounce = strings.ToLower(value) == "true"
		case "segmentation", "segment":
			if policy, ok := parseSegmentPolicy(value); ok {
				config.Segmentation = policy
			}
		case "seed":
			var seed []string
			for _, phrase := range strings.Split(value, ",") {
				if phrase = strings.TrimSpace(phrase); phrase != "" {
					seed = append(seed, phrase)
				}
			}
			config.Seed = seed
		}
	}

	return config
}

func parseSegmentPolicy(value string) (SegmentPolicy, bool) {
	switch strings.ToLower(value) {
	case "words", "word":
		return SegmentWords, true
	case "chars", "characters", "char":
		return SegmentChars, true
	case "chunks", "chunk":
		return SegmentChunks, true
	}
	return SegmentWords, false
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
