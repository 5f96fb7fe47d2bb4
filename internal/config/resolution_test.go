package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/waitfor/pkg/dependency"
)

func envFrom(vars map[string]string) LookupEnv {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestResolve_AppliesDefaults_When_OnlyRequiredSet(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(nil, nil, envFrom(map[string]string{
		"INPUT_GH-TOKEN": "secret",
		"INPUT_JOBS":     "build\ntest",
	}))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, []string{"build", "test"}, cfg.Jobs)
	assert.Equal(t, dependency.MatchExact, cfg.Mode)
	assert.Equal(t, 10*time.Second, cfg.Interval)
	assert.Equal(t, 15, cfg.TTL)
	assert.False(t, cfg.IgnoreSkipped)
	assert.False(t, cfg.AllowTTLOverride)
	assert.Nil(t, cfg.OutputsFrom)
	assert.Equal(t, "github", cfg.ArtifactBackend)
	assert.Equal(t, SourceInput, cfg.Sources[KeyToken])
	assert.Equal(t, SourceDefault, cfg.Sources[KeyInterval])

	wc := cfg.Waiter()
	assert.Equal(t, cfg.Jobs, wc.Jobs)
	assert.Equal(t, 15, wc.TTL)
}

func TestResolve_PriorityOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flags      map[string]string
		env        map[string]string
		file       map[string]string
		wantTTL    int
		wantSource string
	}{
		{
			name:       "flag beats input",
			flags:      map[string]string{KeyTTL: "5"},
			env:        map[string]string{"INPUT_TTL": "6", "WAITFOR_TTL": "7"},
			file:       map[string]string{KeyTTL: "8"},
			wantTTL:    5,
			wantSource: SourceFlag,
		},
		{
			name:       "input beats env",
			env:        map[string]string{"INPUT_TTL": "6", "WAITFOR_TTL": "7"},
			file:       map[string]string{KeyTTL: "8"},
			wantTTL:    6,
			wantSource: SourceInput,
		},
		{
			name:       "blank input falls through",
			env:        map[string]string{"INPUT_TTL": "", "WAITFOR_TTL": "7"},
			wantTTL:    7,
			wantSource: SourceEnv,
		},
		{
			name:       "env beats file",
			env:        map[string]string{"WAITFOR_TTL": "7"},
			file:       map[string]string{KeyTTL: "8"},
			wantTTL:    7,
			wantSource: SourceEnv,
		},
		{
			name:       "file beats default",
			file:       map[string]string{KeyTTL: "8"},
			wantTTL:    8,
			wantSource: SourceFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := map[string]string{"WAITFOR_GH_TOKEN": "secret", "WAITFOR_JOBS": "build"}
			for k, v := range tt.env {
				env[k] = v
			}
			cfg, err := Resolve(tt.flags, tt.file, envFrom(env))
			require.NoError(t, err)
			assert.Equal(t, tt.wantTTL, cfg.TTL)
			assert.Equal(t, tt.wantSource, cfg.Sources[KeyTTL])
		})
	}
}

func TestResolve_FallsBackToGitHubToken(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(map[string]string{KeyJobs: "build"}, nil, envFrom(map[string]string{"GITHUB_TOKEN": "ghs_x"}))
	require.NoError(t, err)
	assert.Equal(t, "ghs_x", cfg.Token)
}

func TestResolve_ParsesMatchAndLists(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(map[string]string{
		KeyToken:            "secret",
		KeyJobs:             "Job a, Job b",
		KeySuffix:           "true",
		KeyIgnoreSkipped:    "true",
		KeyAllowTTLOverride: "true",
		KeyTTL:              "30",
		KeyInterval:         "250",
		KeyOutputsFrom:      "a.json, b.json",
	}, nil, envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"Job a", "Job b"}, cfg.Jobs)
	assert.Equal(t, dependency.MatchSuffix, cfg.Mode)
	assert.True(t, cfg.IgnoreSkipped)
	assert.True(t, cfg.AllowTTLOverride)
	assert.Equal(t, 30, cfg.TTL)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, []string{"a.json", "b.json"}, cfg.OutputsFrom)
}

func TestResolve_Validation(t *testing.T) {
	t.Parallel()

	base := func(extra map[string]string) map[string]string {
		flags := map[string]string{KeyToken: "secret", KeyJobs: "build"}
		for k, v := range extra {
			flags[k] = v
		}
		return flags
	}

	tests := []struct {
		name    string
		flags   map[string]string
		wantErr error
		wantMsg string
	}{
		{name: "missing token", flags: map[string]string{KeyJobs: "build"}, wantErr: ErrMissing, wantMsg: "missing required input: gh-token"},
		{name: "missing jobs", flags: map[string]string{KeyToken: "secret"}, wantErr: ErrMissing, wantMsg: "missing required input: jobs"},
		{name: "blank jobs", flags: base(map[string]string{KeyJobs: " , "}), wantErr: ErrNoValues},
		{name: "prefix and suffix", flags: base(map[string]string{KeyPrefix: "true", KeySuffix: "true"}), wantErr: ErrConflictingMatch},
		{name: "bad interval", flags: base(map[string]string{KeyInterval: "soon"}), wantMsg: `invalid value "soon" for interval: expected a number`},
		{name: "negative ttl", flags: base(map[string]string{KeyTTL: "-1"}), wantMsg: `invalid value "-1" for ttl: must not be negative`},
		{name: "bad bool", flags: base(map[string]string{KeyPrefix: "yes please"}), wantMsg: `invalid value "yes please" for prefix: expected true or false`},
		{name: "bad backend", flags: base(map[string]string{KeyArtifactBackend: "ftp"}), wantMsg: `invalid value "ftp" for artifact-backend (must be: github, s3, dir)`},
		{name: "dir backend without dir", flags: base(map[string]string{KeyArtifactBackend: "dir"}), wantErr: ErrMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Resolve(tt.flags, nil, envFrom(nil))
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}

func TestResolve_ReadsArtifactSettingsFromEnv(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(map[string]string{KeyToken: "t", KeyJobs: "build", KeyArtifactBackend: "s3"}, nil, envFrom(map[string]string{
		"ARTIFACT_S3_ENDPOINT":   "minio:9000",
		"ARTIFACT_S3_ACCESS_KEY": "key",
		"ARTIFACT_S3_SECRET_KEY": "secret",
		"ARTIFACT_S3_PREFIX":     "/runs/",
		"ARTIFACT_S3_USE_SSL":    "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, ArtifactConfig{
		Endpoint:  "minio:9000",
		Region:    "us-east-1",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "waitfor-artifacts",
		Prefix:    "runs",
		UseSSL:    false,
	}, cfg.Artifact)
}

func TestEnvNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "INPUT_GH-TOKEN", InputEnvName(KeyToken))
	assert.Equal(t, "INPUT_OUTPUTS-FROM", InputEnvName(KeyOutputsFrom))
	assert.Equal(t, "WAITFOR_ALLOW_TTL_OVERRIDE", EnvName(KeyAllowTTLOverride))
}
