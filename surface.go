package ambient

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface is a 2D drawing target in viewport coordinates. The particle field
// draws to one; hosts without a canvas pass nil and the field stays off.
type Surface interface {
	Resize(width, height int)
	Clear()
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	FillCircle(cx, cy, r float64, c Color)
}

// ImageSurface is a Surface backed by an offscreen ebiten image.
type ImageSurface struct {
	img *ebiten.Image
}

// NewImageSurface creates an offscreen surface of the given size.
func NewImageSurface(width, height int) *ImageSurface {
	s := &ImageSurface{}
	s.Resize(width, height)
	return s
}

// Image returns the backing image, for compositing onto the screen.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.img
}

// Resize reallocates the backing image. A size equal to the current one is a
// no-op; sizes below one pixel are clamped to one.
func (s *ImageSurface) Resize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	if s.img != nil {
		b := s.img.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
		s.img.Deallocate()
	}
	s.img = ebiten.NewImage(width, height)
}

// Clear erases the surface to transparent.
func (s *ImageSurface) Clear() {
	s.img.Clear()
}

// StrokeLine draws an antialiased line segment.
func (s *ImageSurface) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c.toRGBA(), true)
}

// FillCircle draws an antialiased filled disc.
func (s *ImageSurface) FillCircle(cx, cy, r float64, c Color) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c.toRGBA(), true)
}
