package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"friendsxi-web/pkg/models"
)

// LoadSiteConfig reads the club details file. The decoder is picked from
// the extension: .yml/.yaml, .toml or .json.
func LoadSiteConfig(path string) (models.SiteConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return models.SiteConfig{}, err
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cfg, err := ParseSiteConfig(content, format)
	if err != nil {
		return models.SiteConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func ParseSiteConfig(content []byte, format string) (models.SiteConfig, error) {
	var cfg models.SiteConfig
	var err error
	switch format {
	case "yml", "yaml":
		err = yaml.Unmarshal(content, &cfg)
	case "toml":
		err = toml.Unmarshal(content, &cfg)
	case "json":
		err = json.Unmarshal(content, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return cfg, err
	}
	if cfg.Name == "" {
		return cfg, fmt.Errorf("site name is required")
	}
	return cfg, nil
}
