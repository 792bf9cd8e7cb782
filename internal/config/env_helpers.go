package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// ensureEnvLoaded merges ENV_FILE (default .env) into the process environment once.
// Variables already set win over the file.
func ensureEnvLoaded() {
	envOnce.Do(func() {
		path := lookup("ENV_FILE")
		if path == "" {
			path = ".env"
		}
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("warning: failed to load %s: %v", path, err)
		}
	})
}

func lookup(k string) string {
	return strings.TrimSpace(os.Getenv(k))
}

func getenv(k, def string) string {
	if v := lookup(k); v != "" {
		return v
	}
	return def
}

// u64env accepts zero, so a variable can switch a non-zero default off.
func u64env(k string, def uint64) uint64 {
	v := lookup(k)
	if v == "" {
		return def
	}
	x, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		log.Printf("warning: %s=%q is not an unsigned integer, using %d", k, v, def)
		return def
	}
	return x
}

func intEnv(k string, def int) int {
	v := lookup(k)
	if v == "" {
		return def
	}
	x, err := strconv.Atoi(v)
	if err != nil || x <= 0 {
		log.Printf("warning: %s=%q is not a positive integer, using %d", k, v, def)
		return def
	}
	return x
}

func boolenv(k string, def bool) bool {
	switch strings.ToLower(lookup(k)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	return def
}

// durationEnv takes a Go duration ("1500ms", "2m") or a bare number of seconds.
func durationEnv(k string, def time.Duration) time.Duration {
	v := lookup(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	log.Printf("warning: %s=%q is not a duration, using %s", k, v, def)
	return def
}
