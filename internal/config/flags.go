package config

import (
	"flag"
	"io"
	"time"

	"github.com/ticketly/ticketly/internal/flagx"
)

var knownFlags = []string{"-b", "-f", "-d", "-k", "-g", "-e", "-x", "-u", "-p", "-s", "-t", "-l"}

// parseFlags overlays cfg with the flags it knows about. Other arguments,
// including -c, are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("ticketly", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StorageBackend, "b", cfg.StorageBackend, "storage backend (sqlite, postgres, s3, memory)")
	fs.StringVar(&cfg.StoragePath, "f", cfg.StoragePath, "sqlite database file")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "postgres DSN")
	fs.StringVar(&cfg.S3Bucket, "k", cfg.S3Bucket, "s3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "s3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "s3 base endpoint")
	fs.StringVar(&cfg.S3Prefix, "x", cfg.S3Prefix, "s3 object key prefix")
	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "s3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "s3 secret key")
	fs.StringVar(&cfg.TokenSecret, "s", cfg.TokenSecret, "session token signing secret")
	timeout := fs.Int("t", int(cfg.OperationTimeout.Seconds()), "storage operation timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.OperationTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
