package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig holds the shared limiter settings plus the per-route
// windows. Limits are counted per client IP inside a fixed window:
// 5 registrations, 10 logins and 10 product creates per 15 minutes by
// default.
type RateLimitConfig struct {
	Enabled bool
	Prefix  string
	Debug   bool

	RegisterLimit  int
	RegisterWindow time.Duration
	LoginLimit     int
	LoginWindow    time.Duration
	CreateLimit    int
	CreateWindow   time.Duration
}

func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
		Debug:   envBool("RATE_LIMIT_DEBUG", false),

		RegisterLimit:  envInt("RATE_LIMIT_REGISTER", 5),
		RegisterWindow: envDur("RATE_LIMIT_REGISTER_WINDOW", 15*time.Minute),
		LoginLimit:     envInt("RATE_LIMIT_LOGIN", 10),
		LoginWindow:    envDur("RATE_LIMIT_LOGIN_WINDOW", 15*time.Minute),
		CreateLimit:    envInt("RATE_LIMIT_PRODUCT_CREATE", 10),
		CreateWindow:   envDur("RATE_LIMIT_PRODUCT_CREATE_WINDOW", 15*time.Minute),
	}
}

func envStr(k, d string) string { if v := os.Getenv(k); v != "" { return v }; return d }
func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" { return d }
	switch v {
	case "1","true","TRUE","True","yes","YES","on","ON": return true
	case "0","false","FALSE","False","no","NO","off","OFF": return false
	}
	return d
}
func envInt(k string, d int) int {
	v := os.Getenv(k); if v == "" { return d }
	if n, err := strconv.Atoi(v); err == nil { return n }
	return d
}
func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k); if v == "" { return d }
	if dur, err := time.ParseDuration(v); err == nil { return dur }
	return d
}
