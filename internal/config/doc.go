// Package config resolves waitfor's inputs.
//
// # Configuration Precedence
//
// Each key is resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--jobs, --prefix, --ttl, etc.)
//  2. GitHub Actions inputs (INPUT_JOBS, INPUT_GH-TOKEN, ...)
//  3. Environment variables (WAITFOR_JOBS, WAITFOR_GH_TOKEN, ...; GITHUB_TOKEN
//     as a last resort for the token)
//  4. YAML config file (.waitfor.yaml in the working directory or
//     $XDG_CONFIG_HOME/waitfor/.waitfor.yaml)
//  5. Hardcoded defaults
//
// A .env file in the working directory is loaded into the environment before
// resolution. Variables already set are not overwritten.
//
// # Keys
//
//   - gh-token: token used to list jobs and download artifacts (required)
//   - jobs: dependency names, newline or comma separated, quotes allowed (required)
//   - ignore-skipped: treat skipped jobs as satisfied
//   - prefix, suffix: match job names by prefix or suffix (mutually exclusive)
//   - interval: poll interval in milliseconds (default 10000)
//   - ttl: give up after this many minutes (default 15, capped at 15)
//   - allow-ttl-override: honor a ttl above 15 minutes
//   - outputs-from: JSON output files to merge once all jobs succeed
//   - artifact-backend: where output files live: github, s3 or dir (default github)
//   - artifact-dir: directory for the dir backend
//
// # Artifact Storage
//
// The s3 backend reads ARTIFACT_S3_ENDPOINT, ARTIFACT_S3_REGION,
// ARTIFACT_S3_ACCESS_KEY, ARTIFACT_S3_SECRET_KEY, ARTIFACT_S3_BUCKET,
// ARTIFACT_S3_PREFIX and ARTIFACT_S3_USE_SSL from the environment.
package config
