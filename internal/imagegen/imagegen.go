package imagegen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"horticulture-assistant/pkg/log"
)

const imagegenLogPrefix = "imagegen"

const promptTemplate = "Professional product photography of fresh %s, high quality, vibrant colors, " +
	"Ethiopian market context, clean white background, studio lighting, 4k"

// Config holds where generated images are stored and served from.
type Config struct {
	// Dir is the filesystem directory images are written to.
	Dir string
	// BaseURL is the public path prefix the directory is served under.
	BaseURL string
}

type implUseCase struct {
	generator Generator
	cfg       Config
	l         log.Logger
	now       func() time.Time
}

var _ UseCase = (*implUseCase)(nil)

// New creates a new image generation UseCase implementation. The storage
// directory is created if missing.
func New(generator Generator, cfg Config, l log.Logger) (*implUseCase, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &implUseCase{
		generator: generator,
		cfg:       cfg,
		l:         l,
		now:       time.Now,
	}, nil
}

// GenerateProductImage renders a studio photo of the product and saves it.
func (uc *implUseCase) GenerateProductImage(ctx context.Context, productName string) (string, error) {
	prompt := fmt.Sprintf(promptTemplate, productName)

	img, err := uc.generator.GenerateImage(ctx, prompt)
	if err != nil {
		uc.l.Errorf(ctx, "%s: %v", imagegenLogPrefix, err)
		return "", err
	}

	name := fmt.Sprintf("%s_%d%s",
		strings.ReplaceAll(strings.ToLower(productName), " ", "_"),
		uc.now().UTC().Unix(),
		extensionFor(img.MIMEType, img.Data),
	)
	if err := os.WriteFile(filepath.Join(uc.cfg.Dir, name), img.Data, 0o644); err != nil {
		uc.l.Errorf(ctx, "%s: %v", imagegenLogPrefix, err)
		return "", fmt.Errorf("save image: %w", err)
	}

	url := strings.TrimRight(uc.cfg.BaseURL, "/") + "/" + name
	uc.l.Infof(ctx, "%s: saved %s (%d bytes)", imagegenLogPrefix, url, len(img.Data))
	return url, nil
}

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic = []byte{0xff, 0xd8}
)

// extensionFor picks a file extension from the declared mime type, falling
// back to sniffing the image bytes.
func extensionFor(mimeType string, data []byte) string {
	switch {
	case mimeType == "image/png" || bytes.HasPrefix(data, pngMagic):
		return ".png"
	case mimeType == "image/jpeg" || bytes.HasPrefix(data, jpegMagic):
		return ".jpg"
	case mimeType == "image/webp" || (len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP"))):
		return ".webp"
	}
	return ".bin"
}
