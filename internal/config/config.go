package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Project  ProjectConfig  `mapstructure:"project"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Output   OutputConfig   `mapstructure:"output"`
}

// ProjectConfig holds project-specific settings
type ProjectConfig struct {
	RootDir  string   `mapstructure:"root_dir"` // Root directory of the Java sources
	Encoding []string `mapstructure:"encoding"` // Encoding hints (e.g., ["utf-8", "euc-kr"])
}

// AnalysisConfig holds analysis behavior settings
type AnalysisConfig struct {
	ExcludeDirs []string `mapstructure:"exclude_dirs"` // Directories to exclude
	Dialects    []string `mapstructure:"dialects"`     // Routing dialects, in output order
	Workers     int      `mapstructure:"workers"`      // Concurrent class resolution, 0 = NumCPU
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir        string   `mapstructure:"dir"`         // Output directory
	FileName   string   `mapstructure:"file_name"`   // Output file name (without extension)
	Formats    []string `mapstructure:"formats"`     // Renderers to run
	Title      string   `mapstructure:"title"`       // Document title
	Stylesheet string   `mapstructure:"stylesheet"`  // Optional stylesheet URL for the HTML page
	APIVersion string   `mapstructure:"api_version"` // Version shown in generated documents
	BasePath   string   `mapstructure:"base_path"`   // Server base path
	Callable   bool     `mapstructure:"callable"`    // Whether API consoles may send requests
}

// DefaultTitle is used when output.title is not set
const DefaultTitle = "REST Endpoint Descriptions"

// KnownDialects are the accepted analysis.dialects values
var KnownDialects = []string{"spring", "jaxrs"}

// Load reads the configuration from a file or uses defaults.
// If configPath is empty, it looks for "config.yaml" in the current directory.
// A missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		fmt.Println("Config file not found, using defaults (source ./src, output ./output)")
	} else {
		fmt.Printf("Loaded config from: %s\n", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "no such file") || strings.Contains(msg, "cannot find")
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("project.root_dir", "./src")
	v.SetDefault("project.encoding", []string{"utf-8", "euc-kr"})

	v.SetDefault("analysis.exclude_dirs", []string{
		"**/test/**",
		"**/target/**",
		"**/build/**",
		"**/out/**",
		"**/.git/**",
		"**/.svn/**",
		"**/node_modules/**",
	})
	v.SetDefault("analysis.dialects", KnownDialects)
	v.SetDefault("analysis.workers", 0)

	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.file_name", "rest-endpoints")
	v.SetDefault("output.formats", []string{"html", "openapi"})
	v.SetDefault("output.title", DefaultTitle)
	v.SetDefault("output.stylesheet", "")
	v.SetDefault("output.api_version", "1.0.0")
	v.SetDefault("output.base_path", "/")
	v.SetDefault("output.callable", true)
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	absRoot, err := filepath.Abs(c.Project.RootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve root_dir: %w", err)
	}
	c.Project.RootDir = absRoot

	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// ShouldExclude checks if a file path should be excluded based on exclude_dirs
func (c *Config) ShouldExclude(filePath string) bool {
	normalizedPath := filepath.ToSlash(filePath)

	for _, pattern := range c.Analysis.ExcludeDirs {
		if matchPathPattern(normalizedPath, pattern) {
			return true
		}
	}
	return false
}

// OutputPath returns the output file path for the given extension
func (c *Config) OutputPath(ext string) string {
	return filepath.Join(c.Output.Dir, c.Output.FileName+"."+strings.TrimPrefix(ext, "."))
}

// LogPath returns the log file location
func (c *Config) LogPath() string {
	return filepath.Join(c.Output.Dir, "rest-recon.log")
}

// DocumentTitle returns the configured title or the default one
func (c *Config) DocumentTitle() string {
	if strings.TrimSpace(c.Output.Title) == "" {
		return DefaultTitle
	}
	return c.Output.Title
}

// ServerBasePath returns output.base_path with a leading slash
func (c *Config) ServerBasePath() string {
	p := strings.TrimSpace(c.Output.BasePath)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") && !strings.Contains(p, "://") {
		p = "/" + p
	}
	return p
}

// WorkerCount resolves analysis.workers, 0 meaning one per CPU
func (c *Config) WorkerCount() int {
	if c.Analysis.Workers > 0 {
		return c.Analysis.Workers
	}
	return runtime.NumCPU()
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := os.Stat(c.Project.RootDir); os.IsNotExist(err) {
		return fmt.Errorf("root_dir does not exist: %s", c.Project.RootDir)
	}

	if len(c.Project.Encoding) == 0 {
		return fmt.Errorf("project.encoding must contain at least one encoding")
	}

	if c.Output.FileName == "" {
		return fmt.Errorf("output.file_name cannot be empty")
	}

	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers cannot be negative: %d", c.Analysis.Workers)
	}

	if len(c.Analysis.Dialects) == 0 {
		return fmt.Errorf("analysis.dialects must name at least one dialect")
	}
	for _, d := range c.Analysis.Dialects {
		if !isKnownDialect(d) {
			return fmt.Errorf("unknown dialect in analysis.dialects: %q (known: %s)", d, strings.Join(KnownDialects, ", "))
		}
	}

	return nil
}

func isKnownDialect(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "jax-rs" {
		name = "jaxrs"
	}
	for _, known := range KnownDialects {
		if name == known {
			return true
		}
	}
	return false
}

// matchPathPattern checks if a path matches a glob pattern.
// Supports ** for recursive directory matching.
func matchPathPattern(path, pattern string) bool {
	pattern = filepath.ToSlash(pattern)
	path = filepath.ToSlash(path)

	if strings.Contains(pattern, "**") {
		parts := strings.Split(pattern, "**")
		if len(parts) == 2 {
			prefix := strings.Trim(parts[0], "/")
			suffix := strings.Trim(parts[1], "/")

			hasPrefix := true
			if prefix != "" {
				hasPrefix = strings.HasPrefix(path, prefix+"/") || strings.Contains(path, "/"+prefix+"/")
			}

			// Suffix must be a whole directory or file name
			hasSuffix := true
			if suffix != "" {
				hasSuffix = strings.Contains(path, "/"+suffix+"/") ||
					strings.HasSuffix(path, "/"+suffix) ||
					strings.HasPrefix(path, suffix+"/")
			}

			return hasPrefix && hasSuffix
		}
	}

	cleanPattern := strings.Trim(pattern, "*")
	return strings.Contains(path, cleanPattern)
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== REST Recon Configuration ===")
	fmt.Printf("Project Root:     %s\n", c.Project.RootDir)
	fmt.Printf("Encoding Hints:   %v\n", c.Project.Encoding)
	fmt.Printf("Exclude Dirs:     %v\n", c.Analysis.ExcludeDirs)
	fmt.Printf("Dialects:         %v\n", c.Analysis.Dialects)
	fmt.Printf("Workers:          %d\n", c.WorkerCount())
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Output Formats:   %v\n", c.Output.Formats)
	fmt.Printf("Title:            %s\n", c.DocumentTitle())
	fmt.Printf("API Version:      %s\n", c.Output.APIVersion)
	fmt.Printf("Base Path:        %s\n", c.ServerBasePath())
	fmt.Printf("Callable:         %t\n", c.Output.Callable)
	fmt.Println("================================")
}
