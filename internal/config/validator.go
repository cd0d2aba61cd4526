package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// EnvSchemaVersion is the .env layout this build reads
const EnvSchemaVersion = "1.0"

// EnvKeySchemaVersion names the variable carrying the .env layout version
const EnvKeySchemaVersion = "ENV_SCHEMA_VERSION"

// RequiredEnvVars must be present in the environment, defaults notwithstanding
var RequiredEnvVars = []string{
	EnvKeySchemaVersion,
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
	"JWT_SECRET",
}

// Placeholders shipped in .env.example
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
	ExampleJWTSecret  = "generate_with_openssl_rand_hex_64"
)

// Validate checks the environment layout and the loaded values.
// Hard problems come back joined in err; soft ones as warnings.
func (c *Config) Validate() ([]string, error) {
	var errs []error

	switch v := os.Getenv(EnvKeySchemaVersion); v {
	case EnvSchemaVersion:
	case "":
		errs = append(errs, fmt.Errorf("%s is not set (expected %s)", EnvKeySchemaVersion, EnvSchemaVersion))
	default:
		errs = append(errs, fmt.Errorf("%s is %s, expected %s: the .env file is outdated", EnvKeySchemaVersion, v, EnvSchemaVersion))
	}

	var missing []string
	for _, key := range RequiredEnvVars[1:] {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", ")))
	}

	positive := []struct {
		key string
		ok  bool
	}{
		{"POINTS_PER_CORRECT", c.PointsPerCorrect > 0},
		{"MAX_QUIZZES_PER_SUBJECT", c.MaxQuizzesPerSubject > 0},
		{"INVITATION_TTL", c.InvitationTTL > 0},
		{"SESSION_TTL", c.SessionTTL > 0},
		{"SWEEP_BATCH", c.SweepBatch > 0},
		{"WORKER_COUNT", c.WorkerCount > 0},
	}
	for _, p := range positive {
		if !p.ok {
			errs = append(errs, fmt.Errorf("%s must be positive", p.key))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	var warnings []string
	if c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD still holds the .env.example placeholder")
	}
	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, "API_KEY still holds the .env.example placeholder, generate one with: openssl rand -hex 32")
	}
	if c.JWTSecret == ExampleJWTSecret || len(c.JWTSecret) < MinJWTSecretLength {
		warnings = append(warnings, fmt.Sprintf("JWT_SECRET is a placeholder or shorter than %d bytes", MinJWTSecretLength))
	}
	if c.SessionTTL > c.InvitationTTL {
		warnings = append(warnings, "SESSION_TTL is longer than INVITATION_TTL")
	}
	return warnings, nil
}
