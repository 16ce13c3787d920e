package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig tunes message appearance. Everything has a default, so the file
// itself is optional.
type FileConfig struct {
	Message MessageConfig `yaml:"message"`
}

type MessageConfig struct {
	IconEmoji     string `yaml:"icon_emoji"`
	FallbackAlias string `yaml:"fallback_alias"`
	ViewLabel     string `yaml:"view_label"`
}

func LoadFromFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultFileConfig(), nil
		}
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func defaultFileConfig() *FileConfig {
	cfg := &FileConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *FileConfig) applyDefaults() {
	if c.Message.IconEmoji == "" {
		c.Message.IconEmoji = ":clipboard:"
	}
	if c.Message.FallbackAlias == "" {
		c.Message.FallbackAlias = "OpenProject"
	}
	if c.Message.ViewLabel == "" {
		c.Message.ViewLabel = "View in OpenProject"
	}
}

func (c *FileConfig) IconEmoji() string {
	return c.Message.IconEmoji
}

func (c *FileConfig) FallbackAlias() string {
	return c.Message.FallbackAlias
}

func (c *FileConfig) ViewLabel() string {
	return c.Message.ViewLabel
}
