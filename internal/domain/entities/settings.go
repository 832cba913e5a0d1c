package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRegistryURL     = "https://api.nuget.org/v3/index.json"
	DefaultRegistryTimeout = 30 * time.Second
	DefaultRegistryRetries = 2
	DefaultConcurrency     = 1

	AnalyzerAuto    = "auto"
	AnalyzerMSBuild = "msbuild"
	AnalyzerStatic  = "static"

	FormatText = "text"
	FormatJSON = "json"
)

// AnalyzerNames lists the accepted analyzer selections.
var AnalyzerNames = []string{AnalyzerAuto, AnalyzerMSBuild, AnalyzerStatic} //nolint:gochecknoglobals // enum names

// FormatNames lists the accepted report formats.
var FormatNames = []string{FormatText, FormatJSON} //nolint:gochecknoglobals // enum names

// Settings is the configuration of a run, loaded from an optional YAML file.
type Settings struct {
	Registry    RegistrySettings `yaml:"registry"`
	Prerelease  string           `yaml:"prerelease"`
	Analyzer    string           `yaml:"analyzer"`
	Format      string           `yaml:"format"`
	Concurrency int              `yaml:"concurrency"`
}

// RegistrySettings describes the NuGet v3 feed to query.
type RegistrySettings struct {
	URL      string        `yaml:"url"`      // Service index URL
	Timeout  time.Duration `yaml:"timeout"`  // Per HTTP request
	Retries  int           `yaml:"retries"`  // Retries on transport errors and 5xx
	Username string        `yaml:"username"` // Basic auth user for private feeds
	Token    string        `yaml:"token"`    // Inline, ${ENV_VAR}, or file path
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the configuration used when no file is found.
func DefaultSettings() *Settings {
	return &Settings{
		Registry: RegistrySettings{
			URL:     DefaultRegistryURL,
			Timeout: DefaultRegistryTimeout,
			Retries: DefaultRegistryRetries,
		},
		Prerelease:  PrereleaseAuto.String(),
		Analyzer:    AnalyzerAuto,
		Format:      FormatText,
		Concurrency: DefaultConcurrency,
	}
}

// NewSettings reads a configuration file on top of the defaults, expanding
// environment variables and resolving token file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Registry.URL = expandEnv(settings.Registry.URL)
	settings.Registry.Username = expandEnv(settings.Registry.Username)
	settings.Registry.Token = resolveToken(settings.Registry.Token)

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".outdated.yaml",
		".outdated.yml",
		"outdated.yaml",
		"outdated.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// Validate checks enum values and numeric limits.
func (s *Settings) Validate() error {
	if s.Registry.URL == "" {
		return errors.New("registry.url is required")
	}
	if s.Registry.Retries < 0 {
		return fmt.Errorf("registry.retries must not be negative, got %d", s.Registry.Retries)
	}
	if s.Concurrency < 1 {
		return &InvalidOptionError{Option: "concurrency", Value: fmt.Sprint(s.Concurrency)}
	}
	if _, err := ParsePrereleaseSetting(s.Prerelease); err != nil {
		return err
	}
	if !contains(AnalyzerNames, s.Analyzer) {
		return &InvalidOptionError{Option: "analyzer", Value: s.Analyzer, Allowed: AnalyzerNames}
	}
	if !contains(FormatNames, s.Format) {
		return &InvalidOptionError{Option: "format", Value: s.Format, Allowed: FormatNames}
	}
	return nil
}

// PrereleaseSetting returns the parsed pre-release policy. Validate must have passed.
func (s *Settings) PrereleaseSetting() PrereleaseSetting {
	setting, _ := ParsePrereleaseSetting(s.Prerelease)
	return setting
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := expandEnv(raw)

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read registry token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
