package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses the token TTL and request timeout
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Read-only after startup; the single Config
// value is shared by every request without locking.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	JWTSecret      string        // secret used to sign JWTs
	JWTExpiresIn   string        // token lifetime as given (e.g. "24h"), echoed in auth responses
	TokenTTL       time.Duration // parsed JWTExpiresIn
	BcryptCost     int           // bcrypt cost for password hashing
	RequestTimeout time.Duration // soft per-request deadline before a 408 is emitted
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	expiresIn := envStr("JWT_EXPIRES_IN", "24h")
	ttl, err := time.ParseDuration(expiresIn)
	if err != nil {
		log.Fatalf("invalid duration for JWT_EXPIRES_IN: %q", expiresIn)
	}
	return Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "8080"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		JWTExpiresIn:   expiresIn,
		TokenTTL:       ttl,
		BcryptCost:     mustIntDefault("BCRYPT_COST", 10),
		RequestTimeout: envDur("REQUEST_TIMEOUT", 30*time.Second),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustIntDefault converts an optional environment variable to an integer,
// falling back to def when unset.  An unparsable value is fatal.
func mustIntDefault(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
