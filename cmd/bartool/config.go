package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	envLogLevel    = "BARTOOL_LOG_LEVEL"
	envInstruments = "BARTOOL_INSTRUMENTS"
	envDSN         = "BARTOOL_DSN"
	envDevLog      = "BARTOOL_DEV_LOG"
)

type config struct {
	LogLevel    string
	DevLog      bool
	Instruments string
	DSN         string
}

// loadConfig reads the optional env file first so values set in the process environment win.
func loadConfig(envFile string) (config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config{}, err
		}
	}

	return config{
		LogLevel:    getEnvWithDefault(envLogLevel, "info"),
		DevLog:      os.Getenv(envDevLog) == "true",
		Instruments: getEnvWithDefault(envInstruments, "instruments.yaml"),
		DSN:         os.Getenv(envDSN),
	}, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
