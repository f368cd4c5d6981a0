package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"feed-curator/domain"
)

// Fallbacks when the categories file carries no defaults section.
const (
	defaultQualityThreshold  = 0.6
	defaultHighQualityTarget = 10
)

// Catalog holds every configured category with defaults already merged
// and relative paths resolved against the categories file directory.
type Catalog struct {
	categories map[string]domain.CategoryConfig
	names      []string
}

// CategoryDefaults are catalog-wide settings a category may override.
type CategoryDefaults struct {
	FeedLink          string  `yaml:"feed_link"`
	QualityThreshold  float64 `yaml:"quality_threshold"`
	HighQualityTarget int     `yaml:"high_quality_target"`
}

type categoriesFile struct {
	Categories map[string]categoryEntry `yaml:"categories"`
	Defaults   CategoryDefaults         `yaml:"defaults"`
}

type categoryEntry struct {
	QualityThreshold  *float64 `yaml:"quality_threshold"`
	HighQualityTarget *int     `yaml:"high_quality_target"`
	ArtifactPath      string   `yaml:"artifact_path"`
	PromptsFile       string   `yaml:"prompts_file"`
	FeedLink          string   `yaml:"feed_link"`
	SourceFeeds       []string `yaml:"source_feeds"`
}

// LoadCatalog reads and validates a categories file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading categories file: %w", err)
	}

	var file categoriesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing categories file %s: %w", path, err)
	}

	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("categories file %s defines no categories", path)
	}

	defaults := file.Defaults
	if defaults.QualityThreshold == 0 {
		defaults.QualityThreshold = defaultQualityThreshold
	}
	if defaults.HighQualityTarget == 0 {
		defaults.HighQualityTarget = defaultHighQualityTarget
	}

	baseDir := filepath.Dir(path)

	catalog := &Catalog{
		categories: make(map[string]domain.CategoryConfig, len(file.Categories)),
		names:      make([]string, 0, len(file.Categories)),
	}

	for name, entry := range file.Categories {
		cfg := domain.CategoryConfig{
			Name:              name,
			SourceFeeds:       entry.SourceFeeds,
			ArtifactPath:      resolvePath(baseDir, entry.ArtifactPath),
			PromptsFile:       resolvePath(baseDir, entry.PromptsFile),
			FeedLink:          defaults.FeedLink,
			QualityThreshold:  defaults.QualityThreshold,
			HighQualityTarget: defaults.HighQualityTarget,
		}

		if entry.QualityThreshold != nil {
			cfg.QualityThreshold = *entry.QualityThreshold
		}
		if entry.HighQualityTarget != nil {
			cfg.HighQualityTarget = *entry.HighQualityTarget
		}
		if entry.FeedLink != "" {
			cfg.FeedLink = entry.FeedLink
		}

		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("category %s: %w", name, err)
		}

		catalog.categories[name] = cfg
		catalog.names = append(catalog.names, name)
	}

	sort.Strings(catalog.names)

	return catalog, nil
}

// Get returns the configuration for a single category.
func (c *Catalog) Get(name string) (domain.CategoryConfig, error) {
	cfg, ok := c.categories[name]
	if !ok {
		return domain.CategoryConfig{}, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, name)
	}

	return cfg, nil
}

// Names returns all category names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)

	return out
}

// All returns every category configuration in name order.
func (c *Catalog) All() []domain.CategoryConfig {
	out := make([]domain.CategoryConfig, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.categories[name])
	}

	return out
}

func resolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(baseDir, p)
}
