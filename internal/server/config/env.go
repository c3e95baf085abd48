package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/credvault/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "CREDVAULT_"

// parseEnv loads the dotenv file (from -env/-envfile, else ./.env when
// present) into the process environment without overriding variables that
// are already set, then overlays CREDVAULT_* variables onto config.
func parseEnv(config *Config) error {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	return applyEnv(config, os.LookupEnv)
}

type lookupFunc func(key string) (string, bool)

func applyEnv(c *Config, lookup lookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}

	var errs []error
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(envPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
				return
			}
			*dst = d
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := lookup(envPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(envPrefix + name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	str("GRPC_ADDR", &c.EndpointAddrGRPC)
	str("HTTP_ADDR", &c.EndpointAddrHTTP)
	str("DATABASE_DSN", &c.DatabaseDSN)
	str("SECRET_KEY", &c.SecretKey)
	dur("ACCESS_TOKEN_TTL", &c.AccessTokenValidityDuration)
	dur("REQUEST_TIMEOUT", &c.RequestTimeout)
	str("OWNERSHIP_POLICY", &c.OwnershipPolicy)
	boolean("EXPOSE_PASSWORD_HINT", &c.ExposePasswordHint)
	str("REDIS_ADDR", &c.RedisAddr)
	str("REDIS_PASSWORD", &c.RedisPassword)
	integer("REDIS_DB", &c.RedisDB)
	str("S3_ROOT_USER", &c.S3RootUser)
	str("S3_ROOT_PASSWORD", &c.S3RootPassword)
	str("S3_BUCKET", &c.S3Bucket)
	str("S3_REGION", &c.S3Region)
	str("S3_BASE_ENDPOINT", &c.S3BaseEndpoint)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)

	return errors.Join(errs...)
}
