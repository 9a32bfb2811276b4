package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Learner struct {
	ID   string
	Name string
}

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	DBPath    string // learner history database
	WordsPath string // word bank JSON file

	SeenRetentionDays int // seen-log days kept before pruning; 0 disables

	Learners []Learner
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:     mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout:   mustGetDuration("SHUTDOWN_TIMEOUT"),
		DBPath:            getenvDefault("DB_PATH", "vocadrill.db"),
		WordsPath:         getenvDefault("WORDS_PATH", "words.json"),
		SeenRetentionDays: getenvInt("SEEN_RETENTION_DAYS", 30),
		Learners:          parseLearners(getenvDefault("LEARNERS", "xigua:西瓜,youzi:柚子,xiaole:小樂,apu:阿噗,anan:安安")),
	}
}

// parseLearners reads a "id:name,id:name" roster. A bare id doubles as
// its own display name.
func parseLearners(raw string) []Learner {
	var out []Learner
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, name, found := strings.Cut(part, ":")
		if !found || strings.TrimSpace(name) == "" {
			name = id
		}
		out = append(out, Learner{ID: strings.TrimSpace(id), Name: strings.TrimSpace(name)})
	}
	return out
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}
