package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"yorkfacts/internal/models"
)

// Catalog represents the structure of the config.yaml file.
// Lists that the form and the validator share are easier to manage in YAML than env vars.
type Catalog struct {
	Locations  []string         `yaml:"locations"`
	Categories []string         `yaml:"categories"`
	Similarity SimilarityConfig `yaml:"similarity"`
}

// SimilarityConfig overrides the similarity gate settings.
type SimilarityConfig struct {
	Threshold *float64 `yaml:"threshold,omitempty"`
}

// DefaultCatalog returns the built-in York Region catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Locations:  append([]string(nil), models.DefaultLocations...),
		Categories: append([]string(nil), models.DefaultCategories...),
	}
}

// LoadCatalog loads the YAML catalog at path.
// Returns the default catalog without error if the file doesn't exist.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return DefaultCatalog(), nil
		}
		return nil, err
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Set defaults
	if len(cat.Locations) == 0 {
		cat.Locations = append([]string(nil), models.DefaultLocations...)
	}
	if len(cat.Categories) == 0 {
		cat.Categories = append([]string(nil), models.DefaultCategories...)
	}
	if t := cat.Similarity.Threshold; t != nil && (*t < 0 || *t > 1) {
		return nil, fmt.Errorf("similarity.threshold must be between 0 and 1, got %v", *t)
	}

	return &cat, nil
}

// ApplyTo copies catalog overrides onto the environment config.
func (c *Catalog) ApplyTo(cfg *Config) {
	if c == nil || c.Similarity.Threshold == nil {
		return
	}
	cfg.SimilarityThreshold = *c.Similarity.Threshold
}
