package imagegen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"horticulture-assistant/pkg/gemini"
	"horticulture-assistant/pkg/log"
)

type mockGenerator struct {
	image *gemini.Image
	err   error

	prompt string
}

func (m *mockGenerator) GenerateImage(_ context.Context, prompt string) (*gemini.Image, error) {
	m.prompt = prompt
	if m.err != nil {
		return nil, m.err
	}
	return m.image, nil
}

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 1, 2, 3}

func TestGenerateProductImage(t *testing.T) {
	dir := t.TempDir()
	gen := &mockGenerator{image: &gemini.Image{MIMEType: "image/png", Data: pngBytes}}

	uc, err := New(gen, Config{Dir: dir, BaseURL: "/static/images"}, log.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	uc.now = func() time.Time { return time.Unix(1700000000, 0) }

	url, err := uc.GenerateProductImage(context.Background(), "Fresh Milk")
	if err != nil {
		t.Fatalf("GenerateProductImage: %v", err)
	}
	if url != "/static/images/fresh_milk_1700000000.png" {
		t.Errorf("url = %q, want /static/images/fresh_milk_1700000000.png", url)
	}
	if !strings.Contains(gen.prompt, "Fresh Milk") || !strings.Contains(gen.prompt, "Ethiopian market") {
		t.Errorf("prompt = %q, want product name and market context", gen.prompt)
	}

	saved, err := os.ReadFile(filepath.Join(dir, "fresh_milk_1700000000.png"))
	if err != nil {
		t.Fatalf("read saved image: %v", err)
	}
	if string(saved) != string(pngBytes) {
		t.Error("saved image bytes differ from generated bytes")
	}
}

func TestGenerateProductImage_GeneratorError(t *testing.T) {
	genErr := errors.New("model unavailable")
	uc, err := New(&mockGenerator{err: genErr}, Config{Dir: t.TempDir(), BaseURL: "/static/images"}, log.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := uc.GenerateProductImage(context.Background(), "Tomato"); !errors.Is(err, genErr) {
		t.Errorf("err = %v, want the generator error", err)
	}
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		name string
		mime string
		data []byte
		want string
	}{
		{"declared png", "image/png", nil, ".png"},
		{"sniffed png", "", pngBytes, ".png"},
		{"declared jpeg", "image/jpeg", nil, ".jpg"},
		{"sniffed jpeg", "", []byte{0xff, 0xd8, 0xff}, ".jpg"},
		{"webp", "image/webp", nil, ".webp"},
		{"unknown", "application/octet-stream", []byte{1, 2, 3}, ".bin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extensionFor(tt.mime, tt.data); got != tt.want {
				t.Errorf("extensionFor(%q) = %q, want %q", tt.mime, got, tt.want)
			}
		})
	}
}
