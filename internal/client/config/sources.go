package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/credvault/internal/timex"
)

const envPrefix = "CREDVAULT_CLI_"

// fileConfig is the on-disk shape. Absent keys leave the current value.
type fileConfig struct {
	ServerAddr     *string         `json:"server_addr"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	ExportDir      *string         `json:"export_dir"`
}

func applyFile(c *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.ServerAddr != nil {
		c.ServerAddr = *fc.ServerAddr
	}
	if fc.RequestTimeout != nil {
		c.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.ExportDir != nil {
		c.ExportDir = *fc.ExportDir
	}
	return nil
}

func applyEnv(c *Config, lookup lookupFunc) error {
	if v, ok := lookup(envPrefix + "SERVER_ADDR"); ok {
		c.ServerAddr = v
	}
	if v, ok := lookup(envPrefix + "REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sREQUEST_TIMEOUT: %w", envPrefix, err)
		}
		c.RequestTimeout = d
	}
	if v, ok := lookup(envPrefix + "EXPORT_DIR"); ok {
		c.ExportDir = v
	}
	return nil
}
