package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder for camera preview frames
	_ "image/png"  // Register PNG decoder for camera preview frames

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/ninjafruit/pkg/config"
)

// FontStyle selects one of the bundled Go fonts.
type FontStyle int

const (
	FontRegular FontStyle = iota
	FontBold
)

// ResourceManager is responsible for centralized management of game resources.
//
// The game ships no binary art: fonts come from the Go font family, backgrounds
// are rendered from the palettes in game.yaml, and the camera preview is the
// latest frame pushed by the pose source.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All methods must be called from the
// game loop goroutine. Camera preview frames received on network goroutines are
// handed to the loop before SetCameraPreview is called.
type ResourceManager struct {
	audioContext    *audio.Context
	fontSources     map[FontStyle]*text.GoTextFaceSource
	fontFaceCache   map[string]*text.GoTextFace
	backgroundCache map[string]*ebiten.Image
	cameraPreview   *ebiten.Image
	previewBounds   image.Rectangle
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - audioContext: The global audio context, may be nil (silent mode).
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		audioContext:    audioContext,
		fontSources:     make(map[FontStyle]*text.GoTextFaceSource),
		fontFaceCache:   make(map[string]*text.GoTextFace),
		backgroundCache: make(map[string]*ebiten.Image),
	}
}

// AudioContext returns the audio context, or nil in silent mode.
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}

// LoadFont returns a text face of the given style and size.
// Faces are cached per style and size.
//
// Example:
//
//	face, err := rm.LoadFont(FontBold, 48)
//	if err != nil {
//	    log.Printf("Failed to load font: %v", err)
//	}
func (rm *ResourceManager) LoadFont(style FontStyle, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%d:%.1f", style, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.fontSource(style)
	if err != nil {
		return nil, err
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// MustFont is LoadFont for the bundled fonts, which are known to parse.
func (rm *ResourceManager) MustFont(style FontStyle, size float64) *text.GoTextFace {
	face, err := rm.LoadFont(style, size)
	if err != nil {
		panic(err)
	}
	return face
}

func (rm *ResourceManager) fontSource(style FontStyle) (*text.GoTextFaceSource, error) {
	if source, ok := rm.fontSources[style]; ok {
		return source, nil
	}

	data := goregular.TTF
	if style == FontBold {
		data = gobold.TTF
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source (style %d): %w", style, err)
	}
	rm.fontSources[style] = source
	return source, nil
}

// BackgroundImage returns the background for a palette, rendering it on first use.
func (rm *ResourceManager) BackgroundImage(palette config.BackgroundPalette) *ebiten.Image {
	if img, ok := rm.backgroundCache[palette.Name]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(RenderGradient(
		config.GameWindowWidth, config.GameWindowHeight,
		config.MustColor(palette.Top), config.MustColor(palette.Bottom),
	))
	rm.backgroundCache[palette.Name] = img
	return img
}

// RenderGradient renders a vertical gradient from top to bottom.
func RenderGradient(width, height int, top, bottom color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		c := color.RGBA{
			R: lerpByte(top.R, bottom.R, t),
			G: lerpByte(top.G, bottom.G, t),
			B: lerpByte(top.B, bottom.B, t),
			A: 0xff,
		}
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width; x++ {
			row[x*4] = c.R
			row[x*4+1] = c.G
			row[x*4+2] = c.B
			row[x*4+3] = c.A
		}
	}
	return img
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// DecodePreviewFrame decodes a JPEG or PNG camera preview frame.
func DecodePreviewFrame(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode preview frame: %w", err)
	}
	return img, nil
}

// SetCameraPreview replaces the camera preview with a newly decoded frame.
// Frames of the same size reuse the existing GPU image.
func (rm *ResourceManager) SetCameraPreview(data []byte) error {
	img, err := DecodePreviewFrame(data)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	if rm.cameraPreview != nil && bounds.Size() == rm.previewBounds.Size() {
		rm.cameraPreview.WritePixels(toRGBA(img).Pix)
		return nil
	}
	if rm.cameraPreview != nil {
		rm.cameraPreview.Deallocate()
	}
	rm.cameraPreview = ebiten.NewImageFromImage(img)
	rm.previewBounds = bounds
	return nil
}

// CameraPreview returns the latest camera frame, or nil if none arrived yet.
func (rm *ResourceManager) CameraPreview() *ebiten.Image {
	return rm.cameraPreview
}

// ClearCameraPreview drops the preview, e.g. when the pose source stops.
func (rm *ResourceManager) ClearCameraPreview() {
	if rm.cameraPreview != nil {
		rm.cameraPreview.Deallocate()
	}
	rm.cameraPreview = nil
	rm.previewBounds = image.Rectangle{}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			rgba.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return rgba
}
