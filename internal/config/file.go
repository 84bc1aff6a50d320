package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/ticketly/ticketly/internal/flagx"
	"github.com/ticketly/ticketly/internal/timex"
)

// fileConfig is the on-disk shape. Empty values leave the current setting.
type fileConfig struct {
	StorageBackend   string         `json:"storage_backend" yaml:"storage_backend"`
	StoragePath      string         `json:"storage_path" yaml:"storage_path"`
	DatabaseDSN      string         `json:"database_dsn" yaml:"database_dsn"`
	S3Bucket         string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region         string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3Prefix         string         `json:"s3_prefix" yaml:"s3_prefix"`
	S3AccessKey      string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey      string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	TokenSecret      string         `json:"token_secret" yaml:"token_secret"`
	OperationTimeout timex.Duration `json:"operation_timeout" yaml:"operation_timeout"`
	LogLevel         string         `json:"log_level" yaml:"log_level"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &fc)
	}
	if err != nil {
		return err
	}

	fc.applyTo(cfg)
	return nil
}

func (fc *fileConfig) applyTo(cfg *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.StorageBackend, fc.StorageBackend)
	set(&cfg.StoragePath, fc.StoragePath)
	set(&cfg.DatabaseDSN, fc.DatabaseDSN)
	set(&cfg.S3Bucket, fc.S3Bucket)
	set(&cfg.S3Region, fc.S3Region)
	set(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	set(&cfg.S3Prefix, fc.S3Prefix)
	set(&cfg.S3AccessKey, fc.S3AccessKey)
	set(&cfg.S3SecretKey, fc.S3SecretKey)
	set(&cfg.TokenSecret, fc.TokenSecret)
	set(&cfg.LogLevel, fc.LogLevel)
	if fc.OperationTimeout.Duration > 0 {
		cfg.OperationTimeout = fc.OperationTimeout.Duration
	}
}
