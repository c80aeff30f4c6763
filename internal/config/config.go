package config

import "time"

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Retention RetentionConfig `yaml:"retention"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Hooks     HooksConfig     `yaml:"hooks"`
	Logging   LoggingConfig   `yaml:"logging"`
	Debug     DebugConfig     `yaml:"debug"`
}

type DatabaseConfig struct {
	Kind     string `yaml:"kind"` // "postgres", "mysql"
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"` // empty = all databases (pg_dumpall / --all-databases)
}

type StorageConfig struct {
	Backend string   `yaml:"backend"` // "local", "s3"
	Root    string   `yaml:"root"`    // mounted volume path for "local"
	S3      S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Prefix          string `yaml:"prefix"`
	Endpoint        string `yaml:"endpoint"` // optional, for MinIO-style gateways
	AccessKeyID     string `yaml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	UsePathStyle    bool   `yaml:"usePathStyle"`
}

// RetentionConfig holds the keep counts per tier. A count of 0 disables
// that tier; it then retains nothing beyond what the other tiers cover.
type RetentionConfig struct {
	KeepHourly  int `yaml:"keepHourly"`
	KeepDaily   int `yaml:"keepDaily"`
	KeepWeekly  int `yaml:"keepWeekly"`
	KeepMonthly int `yaml:"keepMonthly"`
}

type ScheduleConfig struct {
	Cron   string `yaml:"cron"`   // standard 5-field cron expression
	Reload bool   `yaml:"reload"` // re-read config on change while the daemon runs
}

type HooksConfig struct {
	PreBackup  []string `yaml:"preBackup"`
	PostBackup []string `yaml:"postBackup"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "info", "debug", etc.
	Format string `yaml:"format"` // "json", "console"
}

type DebugConfig struct {
	// PreExitSleep keeps the process alive after a backup run so an
	// operator can enter the container and inspect the volume.
	PreExitSleep time.Duration `yaml:"preExitSleep"`
}
