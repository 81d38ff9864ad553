package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Configuration variables. These are the defaults for the command line flags
// and can be tuned through the environment.
var (
	BoardWidth    = getEnvInt("SNAKE_WIDTH", 800)
	BoardHeight   = getEnvInt("SNAKE_HEIGHT", 500)
	GridUnit      = getEnvInt("SNAKE_UNIT", 20)
	TickRate      = rate.Limit(getEnvInt("SNAKE_TPS", 10))
	TimeLimit     = getEnvDuration("SNAKE_TIME_LIMIT", 0)
	SelfCollision = getEnvBool("SNAKE_SELF_COLLISION", false)
	Boundary      = getEnvString("SNAKE_BOUNDARY", "wrap")
	Heading       = getEnvString("SNAKE_HEADING", "right")
	ThemeFile     = getEnvString("SNAKE_THEME", "")

	// Spectator server tuning.
	RetainSessions = getEnvInt("SNAKE_RETAIN_SESSIONS", 50)
	ServeTimeLimit = getEnvDuration("SNAKE_SERVE_TIME_LIMIT", 30*time.Second)
	Workers        = getEnvInt("SNAKE_WORKERS", 4)
	MaxTurns       = getEnvInt("SNAKE_MAX_TURNS", 5000)
	PollInterval   = getEnvDuration("SNAKE_POLL_INTERVAL", time.Second)
)

// TickInterval is the time between ticks at the given rate.
func TickInterval(r rate.Limit) time.Duration {
	if r <= 0 || r == rate.Inf {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(r))
}

func getEnvString(varName, defaults string) string {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	return val
}

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

func getEnvBool(varName string, defaults bool) bool {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaults
	}
	return b
}

func getEnvDuration(varName string, defaults time.Duration) time.Duration {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaults
	}
	return d
}
