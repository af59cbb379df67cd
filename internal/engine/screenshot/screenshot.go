// Package screenshot saves rendered frames as PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// DefaultDir is where the viewer writes screenshots.
const DefaultDir = "screenshots"

// Capture writes frames into a directory.
type Capture struct {
	dir    string
	prefix string
	now    func() time.Time
}

// New creates a capture writing <dir>/<prefix>_<frame>_<timestamp>.png.
func New(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path a capture of frame would be written to.
func (c *Capture) Filename(frame int) string {
	name := fmt.Sprintf("%s_%06d_%s.png", c.prefix, frame, c.now().Format("2006-01-02_15-04-05"))
	if c.dir == "" {
		return name
	}
	return filepath.Join(c.dir, name)
}

// SavePixels writes raw RGBA pixels read back from GL. Rows arrive
// bottom-up and are flipped so the PNG is upright.
func (c *Capture) SavePixels(pixels []byte, width, height, frame int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return c.Save(img, frame)
}

// Save writes img as a PNG.
func (c *Capture) Save(img image.Image, frame int) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := c.Filename(frame)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, f.Close()
}
