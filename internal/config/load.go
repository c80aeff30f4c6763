package config

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/raoulx24/sql-archiver/internal/errs"
)

// matches $(VAR_NAME)
var envPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

// replaces $(VAR) with os.Getenv(VAR)
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := mapEnvKey(envPattern.FindStringSubmatch(m)[1])
		return os.Getenv(key)
	})
}

func Load(path string) (*Config, error) {
	// read raw YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(errs.KindConfig, err, "reading config file")
	}

	// expand $(ENV_VAR) placeholders
	expanded := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errs.Wrapf(errs.KindConfig, err, "unmarshalling yaml")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the stock container defaults: postgres on the standard
// port, the /backup volume, 24 hourly generations.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Kind: "postgres",
			Host: "postgres",
			Port: 5432,
			User: "postgres",
		},
		Storage: StorageConfig{
			Backend: "local",
			Root:    "/backup",
		},
		Retention: RetentionConfig{
			KeepHourly:  24,
			KeepDaily:   7,
			KeepWeekly:  4,
			KeepMonthly: 12,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate rejects configurations that cannot possibly run before any
// storage or database I/O happens.
func (c *Config) Validate() error {
	switch c.Database.Kind {
	case "postgres", "mysql":
	default:
		return errs.Newf(errs.KindConfig, "database.kind must be postgres or mysql, got %q", c.Database.Kind)
	}
	if c.Database.Host == "" {
		return errs.Newf(errs.KindConfig, "database.host is required")
	}
	if c.Database.User == "" {
		return errs.Newf(errs.KindConfig, "database.user is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return errs.Newf(errs.KindConfig, "database.port %d out of range", c.Database.Port)
	}

	switch c.Storage.Backend {
	case "local":
		if c.Storage.Root == "" {
			return errs.Newf(errs.KindConfig, "storage.root is required for the local backend")
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return errs.Newf(errs.KindConfig, "storage.s3.bucket is required for the s3 backend")
		}
	default:
		return errs.Newf(errs.KindConfig, "storage.backend must be local or s3, got %q", c.Storage.Backend)
	}

	for _, keep := range []struct {
		name  string
		count int
	}{
		{"keepHourly", c.Retention.KeepHourly},
		{"keepDaily", c.Retention.KeepDaily},
		{"keepWeekly", c.Retention.KeepWeekly},
		{"keepMonthly", c.Retention.KeepMonthly},
	} {
		if keep.count < 0 {
			return errs.Newf(errs.KindConfig, "retention.%s must not be negative", keep.name)
		}
	}

	return nil
}
