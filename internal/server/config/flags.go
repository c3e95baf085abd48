package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/credvault/internal/flagx"
)

// parseFlags overlays command-line flags onto config.
//
//	-a string   gRPC bind address (":50051")
//	-l string   HTTP bind address (":8080")
//	-d string   PostgreSQL DSN
//	-s string   token signing key
//	-t int      access token validity, minutes
//	-o string   ownership policy: hide | deny
//	-r string   Redis address for token revocation
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint
//
// Only these flags are looked at; -c/-config and -env are read elsewhere.
func parseFlags(config *Config) error {
	return parseArgs(config, os.Args[1:])
}

func parseArgs(config *Config, argv []string) error {
	args := flagx.FilterArgs(argv, []string{"-a", "-l", "-d", "-s", "-t", "-o", "-r", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("credvault", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "l", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing key")

	tokenMinutes := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")

	fs.StringVar(&config.OwnershipPolicy, "o", config.OwnershipPolicy, "ownership policy: hide or deny")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "Redis address")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*tokenMinutes) * time.Minute
		}
	})

	return nil
}
