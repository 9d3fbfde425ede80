package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Dir is the on-disk directory fruit sprites are read from.
const Dir = "assets"

// Images caches sprites by assets-relative path. A missing sprite is cached
// as nil so callers fall back to vector drawing without retrying every frame.
type Images struct {
	cache map[string]*ebiten.Image
}

func NewImages() *Images {
	return &Images{cache: map[string]*ebiten.Image{}}
}

func (i *Images) Get(path string) *ebiten.Image {
	if i == nil || path == "" {
		return nil
	}
	clean := cleanAssetPath(path)
	if img, ok := i.cache[clean]; ok {
		return img
	}
	img, err := LoadImage(clean)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("assets: load %s: %v", clean, err)
		}
		img = nil
	}
	i.cache[clean] = img
	return img
}

// Forget drops every cached sprite so the next Get reads from disk again.
func (i *Images) Forget() {
	if i == nil {
		return
	}
	clear(i.cache)
}

// LoadImage reads and decodes an image by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	b, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(cleanAssetPath(path))))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/"+Dir+"/"); idx >= 0 {
			return s[idx+len(Dir)+2:]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}
