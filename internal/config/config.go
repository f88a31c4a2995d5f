package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/example/fieldkit/internal/core/site"
)

// Storage backends
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

// CurrentVersion is written into new config files.
const CurrentVersion = "1"

// HomeEnv overrides the directory that holds .fieldkit/.
const HomeEnv = "FIELDKIT_HOME"

const (
	dirName         = ".fieldkit"
	configFileName  = "config.yaml"
	defaultDBName   = "fieldkit.db"
	defaultDataFile = "sites.json"
)

var clusterIDPattern = regexp.MustCompile(`^C\d+$`)

// Cluster is a named group of sites, expanded to ids C<n>-S1..C<n>-S<sites>.
type Cluster struct {
	ID    string `yaml:"id"`
	Sites int    `yaml:"sites"`
}

// Config represents the fieldkit configuration
type Config struct {
	Version  string    `yaml:"version"`
	Operator string    `yaml:"operator,omitempty"`  // recorded in the field log
	Storage  string    `yaml:"storage"`             // "sqlite" or "file"
	DBPath   string    `yaml:"db_path,omitempty"`   // sqlite storage
	DataFile string    `yaml:"data_file,omitempty"` // file storage
	Clusters []Cluster `yaml:"clusters"`
}

// Default returns the stock configuration: one cluster of seven sites on sqlite.
func Default() *Config {
	return &Config{
		Version:  CurrentVersion,
		Storage:  StorageSQLite,
		Clusters: []Cluster{{ID: "C1", Sites: 7}},
	}
}

// ResolveDir returns the directory under which .fieldkit/ lives.
// FIELDKIT_HOME wins over the user's home directory.
func ResolveDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

// Path returns the config file location for dir.
func Path(dir string) string {
	return filepath.Join(dir, dirName, configFileName)
}

// LoadConfig reads .fieldkit/config.yaml from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault reads the config in dir, falling back to Default when the
// file does not exist. Any other failure is returned.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// SaveConfig writes config.yaml to directory
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, dirName)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", dirName, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.Storage == "" {
		c.Storage = StorageSQLite
	}
	if len(c.Clusters) == 0 {
		c.Clusters = Default().Clusters
	}
}

// Validate checks storage and cluster settings.
func (c *Config) Validate() error {
	if c.Storage != StorageSQLite && c.Storage != StorageFile {
		return fmt.Errorf("invalid storage %q: must be %q or %q", c.Storage, StorageSQLite, StorageFile)
	}
	seen := make(map[string]bool, len(c.Clusters))
	for _, cl := range c.Clusters {
		if !clusterIDPattern.MatchString(cl.ID) {
			return fmt.Errorf("invalid cluster id %q: expected C<number>", cl.ID)
		}
		if seen[cl.ID] {
			return fmt.Errorf("duplicate cluster id %q", cl.ID)
		}
		seen[cl.ID] = true
		if cl.Sites < 1 {
			return fmt.Errorf("cluster %s must have at least one site", cl.ID)
		}
	}
	return nil
}

// SiteIDs expands the clusters into the ordered list of site ids.
func (c *Config) SiteIDs() []string {
	var ids []string
	for _, cl := range c.Clusters {
		ids = append(ids, site.ClusterSiteIDs(cl.ID, cl.Sites)...)
	}
	return ids
}

// DatabasePath returns the sqlite file location, defaulting under dir.
func (c *Config) DatabasePath(dir string) string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(dir, dirName, defaultDBName)
}

// DataFilePath returns the JSON store location, defaulting under dir.
func (c *Config) DataFilePath(dir string) string {
	if c.DataFile != "" {
		return c.DataFile
	}
	return filepath.Join(dir, dirName, defaultDataFile)
}
