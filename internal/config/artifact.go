package config

import (
	"strconv"
	"strings"
)

// ArtifactConfig holds the S3-compatible storage settings for the s3
// artifact backend.
type ArtifactConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

func loadArtifactConfig(env LookupEnv) ArtifactConfig {
	get := func(key string) string {
		v, _ := env(key)
		return strings.TrimSpace(v)
	}
	return ArtifactConfig{
		Endpoint:  get("ARTIFACT_S3_ENDPOINT"),
		Region:    firstNonEmpty(get("ARTIFACT_S3_REGION"), "us-east-1"),
		AccessKey: firstNonEmpty(get("ARTIFACT_S3_ACCESS_KEY"), get("AWS_ACCESS_KEY_ID")),
		SecretKey: firstNonEmpty(get("ARTIFACT_S3_SECRET_KEY"), get("AWS_SECRET_ACCESS_KEY")),
		Bucket:    firstNonEmpty(get("ARTIFACT_S3_BUCKET"), "waitfor-artifacts"),
		Prefix:    strings.Trim(get("ARTIFACT_S3_PREFIX"), "/"),
		UseSSL:    resolveUseSSL(get("ARTIFACT_S3_USE_SSL")),
	}
}

func resolveUseSSL(raw string) bool {
	if raw == "" {
		return true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return b
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
