package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/waitfor/pkg/dependency"
	"github.com/dkoosis/waitfor/pkg/waiter"
)

// Recognized keys. Flags, action inputs, env vars and the YAML file all
// use these names.
const (
	KeyToken            = "gh-token"
	KeyJobs             = "jobs"
	KeyIgnoreSkipped    = "ignore-skipped"
	KeyPrefix           = "prefix"
	KeySuffix           = "suffix"
	KeyInterval         = "interval"
	KeyTTL              = "ttl"
	KeyAllowTTLOverride = "allow-ttl-override"
	KeyOutputsFrom      = "outputs-from"
	KeyArtifactBackend  = "artifact-backend"
	KeyArtifactDir      = "artifact-dir"
)

// Keys lists every recognized key in flag order.
var Keys = []string{
	KeyToken, KeyJobs, KeyIgnoreSkipped, KeyPrefix, KeySuffix, KeyInterval,
	KeyTTL, KeyAllowTTLOverride, KeyOutputsFrom, KeyArtifactBackend, KeyArtifactDir,
}

// Constants for default values.
const (
	DefaultInterval        = 10000 // milliseconds
	DefaultTTL             = 15    // minutes
	DefaultArtifactBackend = "github"
	ConfigFileName         = ".waitfor.yaml"
)

var (
	// ErrMissing is returned when a required key has no value.
	ErrMissing = errors.New("missing required input")
	// ErrConflictingMatch is returned when prefix and suffix are both set.
	ErrConflictingMatch = dependency.ErrConflictingMatch
)

// Config is the fully resolved input of one waitfor invocation.
type Config struct {
	Token            string
	Jobs             []string
	IgnoreSkipped    bool
	Mode             dependency.MatchMode
	Interval         time.Duration
	TTL              int
	AllowTTLOverride bool
	OutputsFrom      []string
	ArtifactBackend  string
	ArtifactDir      string
	Artifact         ArtifactConfig

	// Sources records where each resolved key came from: "flag", "input",
	// "env", "file" or "default".
	Sources map[string]string
}

// Waiter converts the configuration into engine input.
func (c *Config) Waiter() waiter.Config {
	return waiter.Config{
		Jobs:             c.Jobs,
		Mode:             c.Mode,
		IgnoreSkipped:    c.IgnoreSkipped,
		Interval:         c.Interval,
		TTL:              c.TTL,
		AllowTTLOverride: c.AllowTTLOverride,
		OutputFiles:      c.OutputsFrom,
	}
}

// Load resolves every key. flags holds only the flags set explicitly on the
// command line. A .env file is loaded first when present.
func Load(flags map[string]string) (*Config, error) {
	_ = godotenv.Load()

	file, err := LoadFile(getConfigPath())
	if err != nil {
		return nil, err
	}
	return Resolve(flags, file, os.LookupEnv)
}

// LoadFile reads a .waitfor.yaml file into key/value form. An empty path
// yields an empty map. List values are joined with newlines so they parse
// like multi-line action inputs.
func LoadFile(path string) (map[string]string, error) {
	values := make(map[string]string)
	if path == "" {
		return values, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	for k, v := range raw {
		switch tv := v.(type) {
		case nil:
		case []any:
			items := make([]string, 0, len(tv))
			for _, item := range tv {
				items = append(items, fmt.Sprint(item))
			}
			values[k] = strings.Join(items, "\n")
		default:
			values[k] = fmt.Sprint(tv)
		}
	}
	return values, nil
}

// getConfigPath finds the .waitfor.yaml file. It checks the working
// directory first, then the user config dir.
func getConfigPath() string {
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "waitfor", ConfigFileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}

func parseBool(key, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value %q for %s: expected true or false", value, key)
	}
	return b, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid value %q for %s: expected a number", value, key)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid value %q for %s: must not be negative", value, key)
	}
	return n, nil
}
