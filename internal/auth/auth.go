// Package auth resolves API credentials for the model provider.
package auth

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadEnv loads a .env file from the working directory when one exists.
// Missing files are fine; the environment may already be configured.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			log.Debug().Msg("No .env file found, using process environment")
			return
		}
		log.Warn().Err(err).Msg("Failed to load .env file")
		return
	}
	log.Debug().Msg("Environment loaded from .env file")
}

// GetAPIKey retrieves the Gemini API key from the GEMINI_API_KEY environment
// variable. Call LoadEnv first so a local .env file is honored.
func GetAPIKey() (string, error) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		log.Debug().Msg("Using API key from environment variable")
		return key, nil
	}
	return "", fmt.Errorf("API key not found. Set GEMINI_API_KEY in the environment or a .env file")
}
