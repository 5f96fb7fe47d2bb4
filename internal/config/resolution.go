package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dkoosis/waitfor/pkg/dependency"
)

// LookupEnv matches os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// Source names, highest priority first.
const (
	SourceFlag    = "flag"
	SourceInput   = "input"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

var defaults = map[string]string{
	KeyInterval:        fmt.Sprint(DefaultInterval),
	KeyTTL:             fmt.Sprint(DefaultTTL),
	KeyArtifactBackend: DefaultArtifactBackend,
}

type resolver struct {
	flags   map[string]string
	file    map[string]string
	env     LookupEnv
	sources map[string]string
}

// InputEnvName is the variable the Actions runner sets for an input.
func InputEnvName(key string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(key, " ", "_"))
}

// EnvName is the WAITFOR_ variable for key.
func EnvName(key string) string {
	return "WAITFOR_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// lookup returns the highest-priority non-empty value for key.
func (r *resolver) lookup(key string) (string, bool) {
	if v, ok := r.flags[key]; ok {
		return r.found(key, SourceFlag, v)
	}
	if v, ok := r.env(InputEnvName(key)); ok && strings.TrimSpace(v) != "" {
		return r.found(key, SourceInput, v)
	}
	if v, ok := r.env(EnvName(key)); ok && strings.TrimSpace(v) != "" {
		return r.found(key, SourceEnv, v)
	}
	if key == KeyToken {
		if v, ok := r.env("GITHUB_TOKEN"); ok && v != "" {
			return r.found(key, SourceEnv, v)
		}
	}
	if v, ok := r.file[key]; ok && strings.TrimSpace(v) != "" {
		return r.found(key, SourceFile, v)
	}
	if v, ok := defaults[key]; ok {
		return r.found(key, SourceDefault, v)
	}
	return "", false
}

func (r *resolver) found(key, source, value string) (string, bool) {
	r.sources[key] = source
	return strings.TrimSpace(value), true
}

func (r *resolver) required(key string) (string, error) {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissing, key)
	}
	return v, nil
}

func (r *resolver) boolean(key string) (bool, error) {
	v, _ := r.lookup(key)
	return parseBool(key, v)
}

// Resolve applies the precedence rules to already-loaded sources.
func Resolve(flags, file map[string]string, env LookupEnv) (*Config, error) {
	r := &resolver{flags: flags, file: file, env: env, sources: make(map[string]string)}
	cfg := &Config{Sources: r.sources}

	var err error
	if cfg.Token, err = r.required(KeyToken); err != nil {
		return nil, err
	}
	jobs, err := r.required(KeyJobs)
	if err != nil {
		return nil, err
	}
	if cfg.Jobs, err = ValuesFrom(jobs, ""); err != nil {
		return nil, fmt.Errorf("%s: %w", KeyJobs, err)
	}

	if cfg.IgnoreSkipped, err = r.boolean(KeyIgnoreSkipped); err != nil {
		return nil, err
	}
	prefix, err := r.boolean(KeyPrefix)
	if err != nil {
		return nil, err
	}
	suffix, err := r.boolean(KeySuffix)
	if err != nil {
		return nil, err
	}
	if cfg.Mode, err = dependency.ParseMatchMode(prefix, suffix); err != nil {
		return nil, err
	}

	interval, _ := r.lookup(KeyInterval)
	ms, err := parseInt(KeyInterval, interval)
	if err != nil {
		return nil, err
	}
	cfg.Interval = time.Duration(ms) * time.Millisecond

	ttl, _ := r.lookup(KeyTTL)
	if cfg.TTL, err = parseInt(KeyTTL, ttl); err != nil {
		return nil, err
	}
	if cfg.AllowTTLOverride, err = r.boolean(KeyAllowTTLOverride); err != nil {
		return nil, err
	}

	if outputs, ok := r.lookup(KeyOutputsFrom); ok && outputs != "" {
		if cfg.OutputsFrom, err = ValuesFrom(outputs, ""); err != nil {
			return nil, fmt.Errorf("%s: %w", KeyOutputsFrom, err)
		}
	}

	cfg.ArtifactBackend, _ = r.lookup(KeyArtifactBackend)
	cfg.ArtifactDir, _ = r.lookup(KeyArtifactDir)
	if err := validateArtifact(cfg); err != nil {
		return nil, err
	}
	cfg.Artifact = loadArtifactConfig(env)

	return cfg, nil
}

func validateArtifact(cfg *Config) error {
	switch cfg.ArtifactBackend {
	case "github", "s3":
		return nil
	case "dir":
		if cfg.ArtifactDir == "" {
			return fmt.Errorf("%w: %s (required by artifact-backend dir)", ErrMissing, KeyArtifactDir)
		}
		return nil
	default:
		return fmt.Errorf("invalid value %q for %s (must be: github, s3, dir)", cfg.ArtifactBackend, KeyArtifactBackend)
	}
}
