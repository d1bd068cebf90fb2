package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sujalbistaa/socialapp/internal/log"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port         string
	DatabaseURL  string
	CORSOrigin   string
	OperatorName string
	SubmitDelay  time.Duration
	PulseFor     time.Duration
	SubmitRPS    float64
	SubmitBurst  int
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		// Production sets the variables directly, so a missing file is fine.
		log.Info.Println("No .env file found, reading from environment")
	}

	return Config{
		Port:         GetEnv("PORT", "8080"),
		DatabaseURL:  GetEnv("DATABASE_URL", ""),
		CORSOrigin:   GetEnv("CORS_ORIGIN", "*"),
		OperatorName: GetEnv("OPERATOR_NAME", "You"),
		SubmitDelay:  GetDuration("SUBMIT_DELAY", time.Second),
		PulseFor:     GetDuration("PULSE_DURATION", 500*time.Millisecond),
		SubmitRPS:    GetFloat("SUBMIT_RPS", 1),
		SubmitBurst:  GetInt("SUBMIT_BURST", 3),
	}
}

func GetEnv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func GetDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d < 0 {
		return def
	}
	return d
}

func GetInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func GetFloat(k string, def float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}
