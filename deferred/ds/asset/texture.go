package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/gekko3d/lumen/deferred/ds/core"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedFormat = errors.New("asset: unsupported format")

// MaxTextureSize bounds the edge of uploaded textures; larger images are downscaled.
const MaxTextureSize = 4096

// TextureLoader decodes image files into RGBA8 textures and caches them by path.
// Failures never abort: they are logged and yield a shared placeholder.
type TextureLoader struct {
	Logger  core.Logger
	MaxSize int

	mu       sync.Mutex
	cache    map[string]*core.Texture
	failures int
}

func NewTextureLoader(logger core.Logger) *TextureLoader {
	return &TextureLoader{
		Logger:  core.OrNop(logger),
		MaxSize: MaxTextureSize,
		cache:   make(map[string]*core.Texture),
	}
}

// Load returns the texture at path. ok is false when the placeholder was substituted.
func (l *TextureLoader) Load(path string) (*core.Texture, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tex, hit := l.cache[path]; hit {
		return tex, tex != placeholder
	}

	tex, err := l.decode(path)
	if err != nil {
		l.failures++
		l.Logger.Warnf("texture %s: %v; using placeholder", path, err)
		l.cache[path] = placeholder
		return placeholder, false
	}
	l.cache[path] = tex
	return tex, true
}

// Failures counts distinct paths that fell back to the placeholder.
func (l *TextureLoader) Failures() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures
}

func (l *TextureLoader) decode(path string) (*core.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	l.Logger.Debugf("texture %s decoded as %s %dx%d", path, format, img.Bounds().Dx(), img.Bounds().Dy())

	tex := ToTexture(filepath.Base(path), img, l.MaxSize)
	if tex == nil {
		return nil, fmt.Errorf("empty image")
	}
	return tex, nil
}

// ToTexture converts img to tightly packed RGBA8, downscaling so neither edge exceeds maxSize.
func ToTexture(name string, img image.Image, maxSize int) *core.Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
	}

	rgba, isRGBA := img.(*image.RGBA)
	if !isRGBA || w != b.Dx() || h != b.Dy() || rgba.Stride != 4*w || b.Min != (image.Point{}) {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		if w == b.Dx() && h == b.Dy() {
			draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		} else {
			draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		}
		rgba = dst
	}

	return &core.Texture{
		Name:   name,
		Width:  uint32(w),
		Height: uint32(h),
		Pixels: rgba.Pix,
	}
}

// placeholder is a 2x2 magenta/black checker.
var placeholder = &core.Texture{
	Name:   "placeholder",
	Width:  2,
	Height: 2,
	Pixels: []byte{
		255, 0, 255, 255, 0, 0, 0, 255,
		0, 0, 0, 255, 255, 0, 255, 255,
	},
}

// Placeholder returns the texture substituted for unreadable files.
func Placeholder() *core.Texture {
	return placeholder
}

// SolidTexture returns a 1x1 texture of the given color.
func SolidTexture(name string, r, g, b, a uint8) *core.Texture {
	return &core.Texture{Name: name, Width: 1, Height: 1, Pixels: []byte{r, g, b, a}}
}
