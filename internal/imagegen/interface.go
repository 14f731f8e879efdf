package imagegen

import (
	"context"

	"horticulture-assistant/pkg/gemini"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// GenerateProductImage renders a product photo, saves it under the static
	// directory and returns its public URL path.
	GenerateProductImage(ctx context.Context, productName string) (string, error)
}

// Generator renders an image for a prompt.
type Generator interface {
	GenerateImage(ctx context.Context, prompt string) (*gemini.Image, error)
}
