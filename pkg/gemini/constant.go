package gemini

import "time"

const (
	// DefaultModel is the default Gemini model
	DefaultModel = "gemini-2.5-flash"

	// DefaultEmbedModel is the default embedding model
	DefaultEmbedModel = "text-embedding-004"

	// DefaultImageModel is the default image generation model
	DefaultImageModel = "gemini-2.0-flash-preview-image-generation"

	// DefaultAPIURL is the default Gemini API endpoint
	DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)
