package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server configuration, loaded from the environment at startup
var (
	ServerPort       string
	ClientUrl        string
	JWTSecret        string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	RedisAddr        string
	RedisPassword    string
	MediaDir         string
	DefaultPassword  string
)

// Timing groups the clock-sensitive rules of the lifecycle and bonus
// engines so tests can substitute their own windows.
type Timing struct {
	GracePeriod     time.Duration // slack added to a set time limit before expiry
	FastSolveWindow time.Duration // submit-after-generate window for the fast-solve bonus
	EarlyBirdWindow time.Duration // submit-after-start window for the early-bird bonus
	RunnerTimeout   time.Duration // wall-clock bound on generator/validator scripts
}

var DefaultTiming = Timing{
	GracePeriod:     5 * time.Second,
	FastSolveWindow: 65 * time.Second,
	EarlyBirdWindow: 24 * time.Hour,
	RunnerTimeout:   30 * time.Second,
}

// MaxUploadSize bounds submitted output and source files, in bytes.
const MaxUploadSize = 102400

// Load reads the .env file if present and fills the configuration variables
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ServerPort = getEnv("SERVER_PORT", "8080")
	ClientUrl = getEnv("CLIENT_URL", "http://localhost:5173")
	JWTSecret = getEnv("JWT_SECRET", "change-me-in-production")
	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB = getEnv("POSTGRES_DB", "pq")
	RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	RedisPassword = getEnv("REDIS_PASSWORD", "")
	MediaDir = getEnv("MEDIA_DIR", "media")
	DefaultPassword = getEnv("DEFAULT_ADMIN_PASSWORD", "")

	if v := getEnvSeconds("GRACE_PERIOD_SECONDS"); v > 0 {
		DefaultTiming.GracePeriod = v
	}
	if v := getEnvSeconds("FAST_SOLVE_WINDOW_SECONDS"); v > 0 {
		DefaultTiming.FastSolveWindow = v
	}
	if v := getEnvSeconds("EARLY_BIRD_WINDOW_SECONDS"); v > 0 {
		DefaultTiming.EarlyBirdWindow = v
	}
	if v := getEnvSeconds("RUNNER_TIMEOUT_SECONDS"); v > 0 {
		DefaultTiming.RunnerTimeout = v
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvSeconds(key string) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %s", key, value)
		return 0
	}
	return time.Duration(seconds) * time.Second
}
