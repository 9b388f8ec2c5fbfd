package main

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	OutDir   string
	Ext      string
	LogLevel string
}

// LoadConfig reads defaults from a .env file or the environment;
// flags override these.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Addr:     getEnv("PROBEGEN_ADDR", ""),
		OutDir:   getEnv("PROBEGEN_OUT", "./programs"),
		Ext:      getEnv("PROBEGEN_EXT", "ngc"),
		LogLevel: getEnv("PROBEGEN_LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
