package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for devmatch.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis"`

	// Per-language style limits, keyed by language name (python, cpp, ...)
	Limits map[string]StyleLimits `koanf:"limits" toml:"limits"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// AnalysisConfig controls how files are analyzed.
type AnalysisConfig struct {
	// Advanced enables the language-specific deep analyzers. When false
	// every file goes through the basic analysis path.
	Advanced bool `koanf:"advanced" toml:"advanced"`

	// MaxFileSize in bytes; larger files are skipped. 0 disables the limit.
	MaxFileSize int64 `koanf:"max_file_size" toml:"max_file_size"`

	// Workers for parallel project analysis. 0 means NumCPU * 2.
	Workers int `koanf:"workers" toml:"workers"`
}

// StyleLimits defines per-language style thresholds.
type StyleLimits struct {
	MaxLineLength     int `koanf:"max_line_length" toml:"max_line_length"`
	MaxFunctionLength int `koanf:"max_function_length" toml:"max_function_length"`
	MaxComplexity     int `koanf:"max_complexity" toml:"max_complexity"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns" toml:"patterns"`
	Extensions []string `koanf:"extensions" toml:"extensions"`
	Dirs       []string `koanf:"dirs" toml:"dirs"`
	Gitignore  bool     `koanf:"gitignore" toml:"gitignore"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, yaml, toon, markdown
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Advanced:    true,
			MaxFileSize: 1 << 20, // 1 MiB
			Workers:     0,
		},
		Limits: map[string]StyleLimits{
			"python":     {MaxLineLength: 79, MaxFunctionLength: 50, MaxComplexity: 10},
			"cpp":        {MaxLineLength: 100, MaxFunctionLength: 60, MaxComplexity: 15},
			"java":       {MaxLineLength: 120, MaxFunctionLength: 50, MaxComplexity: 10},
			"go":         {MaxLineLength: 100, MaxFunctionLength: 50, MaxComplexity: 10},
			"javascript": {MaxLineLength: 100, MaxFunctionLength: 40, MaxComplexity: 10},
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.min.css",
			},
			Extensions: []string{
				".lock",
				".sum",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				".devmatch",
				"dist",
				"build",
				"__pycache__",
			},
			Gitignore: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".devmatch/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		// Try to detect from content or default to TOML
		parser = toml.Parser()
	}

	// Load the config file
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	// Unmarshal into config struct
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	// Standard config file names to search for
	configNames := []string{
		"devmatch.toml",
		"devmatch.yaml",
		"devmatch.yml",
		"devmatch.json",
		".devmatch.toml",
		".devmatch.yaml",
		".devmatch.yml",
		".devmatch.json",
	}

	// Search in current directory and .devmatch directory
	searchDirs := []string{".", ".devmatch"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// LimitsFor returns the style limits for a language, falling back to the
// Go limits for unknown languages.
func (c *Config) LimitsFor(language string) StyleLimits {
	if l, ok := c.Limits[strings.ToLower(language)]; ok {
		return l
	}
	return StyleLimits{MaxLineLength: 100, MaxFunctionLength: 50, MaxComplexity: 10}
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	// Check directory exclusions
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	// Check extension exclusions
	ext := filepath.Ext(path)
	for _, excludeExt := range c.Exclude.Extensions {
		if ext == excludeExt {
			return true
		}
	}

	// Check pattern exclusions
	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
