package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "firestore-export/internal/shared/errors"

	"github.com/caarlos0/env/v6"
)

// Config holds everything one export run needs. Values come from the
// environment (optionally seeded from a .env file by the entrypoint) and
// are validated before any store access happens.
type Config struct {
	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"firestore_default"`

	ProjectID  string `env:"FIRESTORE_PROJECT_ID"`
	DatabaseID string `env:"FIRESTORE_DATABASE_ID" envDefault:"(default)"`

	// SampleLimit bounds how many documents are inspected per collection;
	// zero means unbounded.
	SampleLimit int `env:"SAMPLE_DOCUMENT_LIMIT" envDefault:"100"`

	// OrderField biases bounded samples toward the newest documents.
	// "__name__" is the store's intrinsic document identifier.
	OrderField string `env:"SAMPLE_ORDER_FIELD" envDefault:"__name__"`

	OutputFile      string `env:"OUTPUT_FILE" envDefault:"output/firestore_structure.json"`
	CredentialsFile string `env:"MONGODB_CREDENTIALS_FILE"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, apperrors.NewConfigurationError("failed to parse environment configuration").WithCause(err)
	}

	if cfg.MongoURI == "" {
		return nil, apperrors.ErrMongoURINotSet
	}
	if cfg.ProjectID == "" {
		return nil, apperrors.ErrProjectIDNotSet
	}
	if cfg.SampleLimit < 0 {
		return nil, fmt.Errorf("%w: %d", apperrors.ErrInvalidSampleLimit, cfg.SampleLimit)
	}

	return cfg, nil
}

// Credential is the material stored at the credentials path: auth values
// the store client needs beyond the connection URI.
type Credential struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	AuthSource string `json:"auth_source,omitempty"`
}

// ResolveCredentialsPath expands and validates a credentials file path:
// "~" resolves to the home directory, relative paths resolve against the
// working directory, and a missing file fails fast before any connection
// attempt.
func ResolveCredentialsPath(path string) (string, error) {
	if path == "" {
		return "", apperrors.NewConfigurationError("credentials file path is not set")
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", apperrors.NewConfigurationError("failed to resolve home directory").WithCause(err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", apperrors.NewConfigurationError("failed to resolve credentials path").WithCause(err)
		}
		path = abs
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrCredentialsMissing, path)
	}

	return path, nil
}

// LoadCredentials reads and validates the credential material at path.
func LoadCredentials(path string) (*Credential, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigurationError("failed to read credentials file").
			WithDetail("path", path).WithCause(err)
	}

	cred := &Credential{}
	if err := json.Unmarshal(raw, cred); err != nil {
		return nil, apperrors.NewConfigurationError("failed to parse credentials file").
			WithDetail("path", path).WithCause(err)
	}
	if cred.Username == "" {
		return nil, apperrors.NewConfigurationError("credentials file has no username").
			WithDetail("path", path)
	}

	return cred, nil
}
