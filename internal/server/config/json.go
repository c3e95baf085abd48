package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/credvault/internal/cryptox"
	"github.com/dmitrijs2005/credvault/internal/flagx"
	"github.com/dmitrijs2005/credvault/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Duration
// fields accept "1h" style strings or integer nanoseconds. Keys missing
// from the file keep their current value.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	RequestTimeout              timex.Duration `json:"request_timeout"`
	OwnershipPolicy             string         `json:"ownership_policy"`
	ExposePasswordHint          bool           `json:"expose_password_hint"`
	PasswordHash                cryptox.Params `json:"password_hash"`
	SecretKDF                   cryptox.Params `json:"secret_kdf"`
	RedisAddr                   string         `json:"redis_addr"`
	RedisPassword               string         `json:"redis_password"`
	RedisDB                     int            `json:"redis_db"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	LogLevel                    string         `json:"log_level"`
	LogFormat                   string         `json:"log_format"`
}

func toJsonConfig(c *Config) *JsonConfig {
	return &JsonConfig{
		EndpointAddrGRPC:            c.EndpointAddrGRPC,
		EndpointAddrHTTP:            c.EndpointAddrHTTP,
		DatabaseDSN:                 c.DatabaseDSN,
		SecretKey:                   c.SecretKey,
		AccessTokenValidityDuration: timex.Duration{Duration: c.AccessTokenValidityDuration},
		RequestTimeout:              timex.Duration{Duration: c.RequestTimeout},
		OwnershipPolicy:             c.OwnershipPolicy,
		ExposePasswordHint:          c.ExposePasswordHint,
		PasswordHash:                c.PasswordHash,
		SecretKDF:                   c.SecretKDF,
		RedisAddr:                   c.RedisAddr,
		RedisPassword:               c.RedisPassword,
		RedisDB:                     c.RedisDB,
		S3RootUser:                  c.S3RootUser,
		S3RootPassword:              c.S3RootPassword,
		S3Bucket:                    c.S3Bucket,
		S3Region:                    c.S3Region,
		S3BaseEndpoint:              c.S3BaseEndpoint,
		LogLevel:                    c.LogLevel,
		LogFormat:                   c.LogFormat,
	}
}

func (j *JsonConfig) apply(c *Config) {
	c.EndpointAddrGRPC = j.EndpointAddrGRPC
	c.EndpointAddrHTTP = j.EndpointAddrHTTP
	c.DatabaseDSN = j.DatabaseDSN
	c.SecretKey = j.SecretKey
	c.AccessTokenValidityDuration = j.AccessTokenValidityDuration.Duration
	c.RequestTimeout = j.RequestTimeout.Duration
	c.OwnershipPolicy = j.OwnershipPolicy
	c.ExposePasswordHint = j.ExposePasswordHint
	c.PasswordHash = j.PasswordHash
	c.SecretKDF = j.SecretKDF
	c.RedisAddr = j.RedisAddr
	c.RedisPassword = j.RedisPassword
	c.RedisDB = j.RedisDB
	c.S3RootUser = j.S3RootUser
	c.S3RootPassword = j.S3RootPassword
	c.S3Bucket = j.S3Bucket
	c.S3Region = j.S3Region
	c.S3BaseEndpoint = j.S3BaseEndpoint
	c.LogLevel = j.LogLevel
	c.LogFormat = j.LogFormat
}

// parseJson overlays the file named by -c/-config, if any, onto config.
func parseJson(config *Config) error {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	j := toJsonConfig(config)
	if err := json.Unmarshal(data, j); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	j.apply(config)

	return nil
}
