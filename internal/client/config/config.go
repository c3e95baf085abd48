// Package config loads settings for the credvault CLI.
//
// Sources apply in order, each overriding the one before: built-in
// defaults, the JSON file named by -c/-config, CREDVAULT_CLI_* environment
// variables and finally the command-line flags below. Other arguments are
// ignored.
//
//	-a string     gRPC endpoint of the server (127.0.0.1:50051)
//	-t duration   deadline for each server call (10s)
//	-x string     directory "export save" writes to (exports)
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/credvault/internal/flagx"
)

type Config struct {
	ServerAddr     string
	RequestTimeout time.Duration
	// ExportDir is absolute or relative to the working directory.
	ExportDir string
}

func Defaults() Config {
	return Config{
		ServerAddr:     "127.0.0.1:50051",
		RequestTimeout: 10 * time.Second,
		ExportDir:      "exports",
	}
}

func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return errors.New("server address must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.ExportDir == "" {
		return errors.New("export directory must not be empty")
	}
	return nil
}

// LoadConfig reads the process arguments and environment.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type lookupFunc func(key string) (string, bool)

func load(argv []string, lookup lookupFunc) (*Config, error) {
	cfg := Defaults()

	fs := flag.NewFlagSet("credvault-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var file string
	fs.StringVar(&file, "c", "", "JSON config file")
	fs.StringVar(&file, "config", "", "JSON config file")
	addr := fs.String("a", "", "gRPC endpoint of the server")
	timeout := fs.Duration("t", 0, "deadline for each server call")
	dir := fs.String("x", "", "export directory")

	args := flagx.FilterArgs(argv, []string{"-c", "-config", "-a", "-t", "-x"})
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if file != "" {
		if err := applyFile(&cfg, file); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.ServerAddr = *addr
		case "t":
			cfg.RequestTimeout = *timeout
		case "x":
			cfg.ExportDir = *dir
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
