package chat

import "os"

// Gemini Model IDs
//
// | Model Name             | API Model ID          | Use Case                      |
// |------------------------|-----------------------|-------------------------------|
// | Gemini 2.5 Pro         | gemini-2.5-pro        | Stable, high-reasoning tasks  |
// | Gemini 2.5 Flash       | gemini-2.5-flash      | Stable, balanced performance  |
// | Gemini 2.5 Flash-Lite  | gemini-2.5-flash-lite | High-throughput, lowest cost  |
const (
	// ModelGemini25Pro is stable, for high-reasoning tasks.
	ModelGemini25Pro = "gemini-2.5-pro"

	// ModelGemini25Flash is stable, balanced performance.
	ModelGemini25Flash = "gemini-2.5-flash"

	// ModelGemini25FlashLite is for high-throughput, lowest cost.
	ModelGemini25FlashLite = "gemini-2.5-flash-lite"
)

// DefaultModelName is the default model for variation and caption generation.
// Short rewrites at low token budgets do not need a reasoning-tier model.
const DefaultModelName = ModelGemini25Flash

// GetModelName returns the model to use, resolved from:
// 1. CAROUSEL_MODEL environment variable (if set)
// 2. Default: gemini-2.5-flash
func GetModelName() string {
	if env := os.Getenv("CAROUSEL_MODEL"); env != "" {
		return env
	}
	return DefaultModelName
}
