package config

import (
	"os"
	"strconv"
)

// Config holds runtime configuration. Every field has a sensible default so
// the server boots with no environment at all; a .env file (loaded in main)
// or real env vars override them.
type Config struct {
	Env                 string  // application environment (e.g. "dev", "prod")
	Addr                string  // HTTP listen address
	DataDir             string  // directory with seat_layout.json and friends
	LuckyEnabled        bool    // enable the lucky-draw override at stop time
	LuckyProbability    float64 // 0 means 1/initialPoolSize
	SpinTickMillis      int     // spin re-sample interval
	HideFixedFromSelect bool    // keep fixed names out of the selection list
}

func Load() Config {
	return Config{
		Env:                 getenv("APP_ENV", "dev"),
		Addr:                getenv("APP_ADDR", ":8080"),
		DataDir:             getenv("DATA_DIR", "data"),
		LuckyEnabled:        getbool("LUCKY_DRAW", false),
		LuckyProbability:    getfloat("LUCKY_PROBABILITY", 0),
		SpinTickMillis:      getint("SPIN_TICK_MS", 50),
		HideFixedFromSelect: getbool("HIDE_FIXED_FROM_SELECT", true),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getint(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getfloat(key string, def float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
