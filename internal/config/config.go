package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const maxWorkers = 10

type Config struct {
	Output  string `yaml:"output"`
	Workers int    `yaml:"workers"`
	// Timeout is in seconds; zero disables it.
	Timeout  int  `yaml:"timeout"`
	Debug    bool `yaml:"debug"`
	Progress bool `yaml:"progress"`

	SiteURL  string `yaml:"site_url"`
	ImageURL string `yaml:"image_url"`
	// FeedURL defaults to SiteURL + "/rss.xml".
	FeedURL   string `yaml:"feed_url,omitempty"`
	Extractor string `yaml:"extractor"`

	UserAgent        string `yaml:"user_agent"`
	CloudflareBypass bool   `yaml:"cloudflare_bypass"`

	LogPath       string `yaml:"log_path"`
	LogMaxSize    int    `yaml:"log_max_size"`
	LogMaxBackups int    `yaml:"log_max_backups"`
}

// Options carries CLI overrides. Zero values leave the config untouched,
// except Timeout when TimeoutSet is true.
type Options struct {
	IgnoreConfig bool
	Debug        bool
	Output       string
	Workers      int
	Timeout      int
	TimeoutSet   bool
	NoProgress   bool
	Extractor    string
	UserAgent    string
	LogPath      string
}

func DefaultConfig() *Config {
	return &Config{
		Output:        "comics/",
		Workers:       maxWorkers,
		Timeout:       30,
		Debug:         false,
		Progress:      true,
		SiteURL:       "https://xkcd.com",
		ImageURL:      "https://imgs.xkcd.com",
		Extractor:     "regex",
		LogMaxSize:    50,
		LogMaxBackups: 3,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.TimeoutSet || o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.Debug {
		c.Debug = true
	}
	if o.NoProgress {
		c.Progress = false
	}
	if o.Extractor != "" {
		c.Extractor = o.Extractor
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.LogPath != "" {
		c.LogPath = o.LogPath
	}
}

func normalizeDefaults(c *Config) {
	def := DefaultConfig()

	if c.Output == "" {
		c.Output = def.Output
	}
	if c.Workers < 1 || c.Workers > maxWorkers {
		c.Workers = maxWorkers
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
	if c.SiteURL == "" {
		c.SiteURL = def.SiteURL
	}
	if c.ImageURL == "" {
		c.ImageURL = def.ImageURL
	}
	if c.FeedURL == "" {
		c.FeedURL = c.SiteURL + "/rss.xml"
	}
	if c.Extractor == "" {
		c.Extractor = def.Extractor
	}
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c *Config) Print(w io.Writer) {
	fmt.Fprintf(w, " -output: %s\n", c.Output)
	fmt.Fprintf(w, " -workers: %d\n", c.Workers)
	fmt.Fprintf(w, " -timeout: %ds\n", c.Timeout)
	if c.Debug {
		fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
	if !c.Progress {
		fmt.Fprintf(w, " -progress: %t\n", c.Progress)
	}
	fmt.Fprintf(w, " -site_url: %s\n", c.SiteURL)
	fmt.Fprintf(w, " -image_url: %s\n", c.ImageURL)
	feed := c.FeedURL
	if feed == "" {
		feed = c.SiteURL + "/rss.xml"
	}
	fmt.Fprintf(w, " -feed_url: %s\n", feed)
	fmt.Fprintf(w, " -extractor: %s\n", c.Extractor)
	if c.UserAgent != "" {
		fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	}
	if c.CloudflareBypass {
		fmt.Fprintf(w, " -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if c.LogPath != "" {
		fmt.Fprintf(w, " -log_path: %s (max %d MB, %d backups)\n", c.LogPath, c.LogMaxSize, c.LogMaxBackups)
	}
}
