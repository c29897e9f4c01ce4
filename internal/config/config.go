package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/compozy/hellopr/internal/domain"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// DefaultConfigPath is the configuration file read when no path is given.
const DefaultConfigPath = "config.json"

var (
	ownerNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	repoNameRegex  = regexp.MustCompile(`^[a-zA-Z0-9\-_.]+$`)
)

type Config struct {
	Token   string `mapstructure:"token"`
	APIURL  string `mapstructure:"api_url"`
	PerPage int    `mapstructure:"per_page"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		APIURL:  "https://api.github.com",
		PerPage: 10,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("token cannot be empty")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_url: %s", c.APIURL)
	}
	if c.PerPage < 1 || c.PerPage > 100 {
		return fmt.Errorf("per_page must be between 1 and 100, got %d", c.PerPage)
	}
	return nil
}

// String hides the token.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Token: <redacted>, APIURL: %s, PerPage: %d}", c.APIURL, c.PerPage)
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	if !ownerNameRegex.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !repoNameRegex.MatchString(repo) || repo == "." || repo == ".." {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

// LoadConfig reads the JSON configuration file at path from fs. The file must
// hold an object with a string "token"; every failure wraps domain.ErrConfig.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	defaults := DefaultConfig()
	v.SetDefault("api_url", defaults.APIURL)
	v.SetDefault("per_page", defaults.PerPage)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: error reading or parsing the configuration file %s: %w", domain.ErrConfig, path, err)
	}
	if err := checkTokenField(fs, path); err != nil {
		return nil, err
	}
	if _, ok := v.Get("api_url").(string); !ok {
		return nil, fmt.Errorf("%w: api_url in %s is not a string", domain.ErrConfig, path)
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfig, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: config validation failed: %w", domain.ErrConfig, err)
	}
	return &config, nil
}

// checkTokenField reads the raw document because viper folds key case and
// coerces scalars: the key must be exactly "token" and hold a JSON string.
func checkTokenField(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("%w: error reading the configuration file %s: %w", domain.ErrConfig, path, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: error parsing the configuration file %s: %w", domain.ErrConfig, path, err)
	}
	raw, ok := fields["token"]
	if !ok {
		return fmt.Errorf("%w: token not found in %s", domain.ErrConfig, path)
	}
	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		return fmt.Errorf("%w: token in %s is not a string", domain.ErrConfig, path)
	}
	return nil
}
