package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vango-dev/vmark/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vmark.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultOut is the default export output directory.
	DefaultOut = "dist"

	// DefaultTheme is the default syntax highlighting theme.
	DefaultTheme = "github"

	// DefaultDebounce is the default watcher debounce window.
	DefaultDebounce = 100 * time.Millisecond
)

// Config represents the complete vmark.json configuration.
type Config struct {
	// Name is the project name, used as the page title fallback.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Server contains preview server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Watch contains file watcher settings.
	Watch WatchConfig `json:"watch,omitempty"`

	// Render contains markdown rendering settings.
	Render RenderConfig `json:"render,omitempty"`

	// Publish contains export settings.
	Publish PublishConfig `json:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// LiveReload enables reload-on-save in the browser.
	LiveReload bool `json:"liveReload,omitempty"`

	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool `json:"metrics,omitempty"`
}

// WatchConfig contains file watcher settings.
type WatchConfig struct {
	// Ignore contains doublestar patterns excluded from watching,
	// e.g. "**/node_modules/**".
	Ignore []string `json:"ignore,omitempty"`

	// Debounce is how long to coalesce bursts of file events before
	// reloading (e.g. "100ms").
	Debounce string `json:"debounce,omitempty"`
}

// RenderConfig contains markdown rendering settings.
type RenderConfig struct {
	// Wrapper is the tag of the element output is wrapped in.
	Wrapper string `json:"wrapper,omitempty"`

	// Class is applied to the wrapper element.
	Class string `json:"class,omitempty"`

	// Unsafe disables sanitization.
	Unsafe bool `json:"unsafe,omitempty"`

	// Highlight enables syntax highlighting of fenced code blocks.
	Highlight bool `json:"highlight,omitempty"`

	// Theme is the chroma style used for highlighting.
	Theme string `json:"theme,omitempty"`
}

// PublishConfig contains export settings.
type PublishConfig struct {
	// Include contains doublestar patterns selecting source files.
	Include []string `json:"include,omitempty"`

	// Exclude contains doublestar patterns removed from the selection.
	Exclude []string `json:"exclude,omitempty"`

	// Out is the output directory for disk exports.
	Out string `json:"out,omitempty"`

	// S3Bucket switches the export destination to an S3 bucket.
	S3Bucket string `json:"s3Bucket,omitempty"`

	// S3Prefix is prepended to every uploaded key.
	S3Prefix string `json:"s3Prefix,omitempty"`

	// S3Region is the bucket region.
	S3Region string `json:"s3Region,omitempty"`
}

// New creates a configuration with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Server: ServerConfig{
			Host:       DefaultHost,
			Port:       DefaultPort,
			LiveReload: true,
		},
		Watch: WatchConfig{
			Ignore:   []string{"**/.*", "**/node_modules/**"},
			Debounce: "100ms",
		},
		Render: RenderConfig{
			Wrapper:   "article",
			Class:     "markdown-body",
			Highlight: true,
			Theme:     DefaultTheme,
		},
		Publish: PublishConfig{
			Include: []string{"**/*.md"},
			Out:     DefaultOut,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for vmark.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. A missing
// file carries the underlying fs error wrapped, so callers can fall back
// to defaults via errors.Is(err, fs.ErrNotExist).
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.CategoryConfig,
				"no %s found in %s", ConfigFileName, filepath.Dir(path)).
				WithSuggestion("Run 'vmark serve' without a config to use defaults, or create vmark.json").
				Wrap(err)
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that vmark.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Newf(errors.CategoryConfig, "encode config: %v", err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Newf(errors.CategoryConfig, "write config: %v", err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = "100ms"
	}
	if c.Render.Wrapper == "" {
		c.Render.Wrapper = "article"
	}
	if c.Render.Theme == "" {
		c.Render.Theme = DefaultTheme
	}
	if len(c.Publish.Include) == 0 {
		c.Publish.Include = []string{"**/*.md"}
	}
	if c.Publish.Out == "" {
		c.Publish.Out = DefaultOut
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.Newf(errors.CategoryConfig,
			"invalid port %d", c.Server.Port).
			WithDetail("Port must be between 0 and 65535")
	}
	if !isElementName(c.Render.Wrapper) {
		return errors.New("E102").
			WithDetail("Got " + strconv.Quote(c.Render.Wrapper))
	}
	for _, pat := range c.Watch.Ignore {
		if !doublestar.ValidatePattern(pat) {
			return errors.New("E103").
				WithDetail("Got " + strconv.Quote(pat))
		}
	}
	for _, pat := range c.Publish.Include {
		if !doublestar.ValidatePattern(pat) {
			return errors.New("E103").
				WithDetail("Got include pattern " + strconv.Quote(pat))
		}
	}
	for _, pat := range c.Publish.Exclude {
		if !doublestar.ValidatePattern(pat) {
			return errors.New("E103").
				WithDetail("Got exclude pattern " + strconv.Quote(pat))
		}
	}
	return nil
}

// Address returns the listen address for the preview server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the full URL for the preview server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// DebounceInterval returns the parsed watcher debounce window, falling
// back to the default when the configured value does not parse.
func (c *Config) DebounceInterval() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d < 0 {
		return DefaultDebounce
	}
	return d
}

// OutPath returns the absolute path to the export output directory.
func (c *Config) OutPath() string {
	if filepath.IsAbs(c.Publish.Out) {
		return c.Publish.Out
	}
	return filepath.Join(c.Dir(), c.Publish.Out)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing vmark.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Newf(errors.CategoryConfig,
				"no %s found in %s or any parent directory", ConfigFileName, startDir).
				Wrap(os.ErrNotExist)
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest project root
// above the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

// isElementName reports whether s is a plain element name: an ASCII
// letter followed by letters or digits. That covers div, article and
// section without admitting attribute syntax.
func isElementName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
