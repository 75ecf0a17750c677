// Package canvas holds the surfaces a dot grid can be replayed onto.
package canvas

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/sumwatshade/surfgrid/cmd/dotgrid"
)

const (
	white uint8 = 0xff
	ink   uint8 = 0x00
)

// Raster paints onto an 8-bit gray image with a white background.
type Raster struct {
	img *image.Gray
}

var _ dotgrid.Surface = (*Raster)(nil)

func NewRaster(width, height int) *Raster {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = white
	}
	return &Raster{img: img}
}

// FillCircle sets every pixel whose center lies inside the circle.
func (r *Raster) FillCircle(x, y float64, diameter int) {
	if diameter <= 0 {
		return
	}
	radius := float64(diameter) / 2
	cx, cy := x+radius, y+radius
	for py := int(math.Floor(y)); py <= int(math.Ceil(y+float64(diameter))); py++ {
		for px := int(math.Floor(x)); px <= int(math.Ceil(x+float64(diameter))); px++ {
			dx := float64(px) + 0.5 - cx
			dy := float64(py) + 0.5 - cy
			if dx*dx+dy*dy <= radius*radius {
				r.set(px, py)
			}
		}
	}
}

// DrawLine paints a segment width pixels thick with round ends.
func (r *Raster) DrawLine(from, to dotgrid.Point, width int) {
	if width <= 0 {
		return
	}
	half := float64(width) / 2
	minX := int(math.Floor(math.Min(from.X, to.X) - half))
	maxX := int(math.Ceil(math.Max(from.X, to.X) + half))
	minY := int(math.Floor(math.Min(from.Y, to.Y) - half))
	maxY := int(math.Ceil(math.Max(from.Y, to.Y) + half))
	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			if segmentDistance(float64(px)+0.5, float64(py)+0.5, from, to) <= half {
				r.set(px, py)
			}
		}
	}
}

// Caption writes s in the bottom-left corner.
func (r *Raster) Caption(s string) {
	if s == "" {
		return
	}
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(color.Gray{Y: ink}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, r.img.Rect.Dy()-4),
	}
	d.DrawString(s)
}

func (r *Raster) Image() *image.Gray { return r.img }

func (r *Raster) WritePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Raster) set(x, y int) {
	if image.Pt(x, y).In(r.img.Rect) {
		r.img.SetGray(x, y, color.Gray{Y: ink})
	}
}

// segmentDistance is the distance from (x, y) to the closest point of the
// segment a-b.
func segmentDistance(x, y float64, a, b dotgrid.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	t := 0.0
	if l := dx*dx + dy*dy; l > 0 {
		t = ((x-a.X)*dx + (y-a.Y)*dy) / l
		t = math.Max(0, math.Min(1, t))
	}
	return math.Hypot(x-(a.X+t*dx), y-(a.Y+t*dy))
}
