// Package cli provides small helpers shared by the command-line entry point:
// interactive prompts for missing flags, path validation, and display
// formatting.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// PromptForPath prompts the user interactively for a path, returning
// defaultPath if the user enters nothing.
func PromptForPath(label, defaultPath string) string {
	fmt.Printf("%s [%s]: ", label, defaultPath)

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read input, using default")
		return defaultPath
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return defaultPath
	}
	return input
}
