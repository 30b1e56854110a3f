package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first if present; a missing file is not an
// error. Unset variables leave the current values untouched.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_PRIVATE_KEY_PATH"); ok {
		config.PrivateKeyPath = v
	}
	if v, ok := os.LookupEnv("JWT_PUBLIC_KEY_PATH"); ok {
		config.PublicKeyPath = v
	}
	if v, ok := os.LookupEnv("TOKEN_ISSUER"); ok {
		config.TokenIssuer = v
	}
	if v, ok := os.LookupEnv("TOKEN_AUDIENCE"); ok {
		config.TokenAudience = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY_DURATION"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.TokenValidityDuration = d
	}
}
