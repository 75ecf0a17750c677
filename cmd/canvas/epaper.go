package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/devices/v3/waveshare2in13v4"
	"periph.io/x/host/v3"

	"github.com/sumwatshade/surfgrid/cmd/dotgrid"
)

// Panel is the part of an e-paper driver the surface needs.
// *waveshare2in13v4.Dev satisfies it.
type Panel interface {
	Bounds() image.Rectangle
	Init() error
	Clear(c color.Color) error
	Draw(dst image.Rectangle, src image.Image, sp image.Point) error
	Sleep() error
}

// EPaper buffers drawing in a landscape raster and pushes it to a portrait
// panel on Flush. The panel is not written to before Flush, so a render that
// fails part way leaves the previous image on screen.
type EPaper struct {
	*Raster
	panel Panel
	port  spi.PortCloser
}

var _ dotgrid.Surface = (*EPaper)(nil)

// OpenEPaper initializes the host, opens the named SPI port ("" picks the
// first one) and attaches a Waveshare 2.13" v4 HAT.
func OpenEPaper(spiName string) (*EPaper, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initializing host: %w", err)
	}
	port, err := spireg.Open(spiName)
	if err != nil {
		return nil, fmt.Errorf("opening spi port: %w", err)
	}
	opts := waveshare2in13v4.EPD2in13v4
	dev, err := waveshare2in13v4.NewHat(port, &opts)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("opening e-paper hat: %w", err)
	}
	e := NewEPaper(dev)
	e.port = port
	return e, nil
}

// NewEPaper wraps an already opened panel.
func NewEPaper(p Panel) *EPaper {
	b := p.Bounds()
	return &EPaper{Raster: NewRaster(b.Dy(), b.Dx()), panel: p}
}

// Flush wakes the panel, converts the raster to one bit per pixel, draws it
// and puts the panel back to sleep. E-paper keeps the image while asleep.
func (e *EPaper) Flush() error {
	if err := e.panel.Init(); err != nil {
		return fmt.Errorf("initializing panel: %w", err)
	}
	if err := e.panel.Clear(color.White); err != nil {
		return fmt.Errorf("clearing panel: %w", err)
	}
	bounds := e.panel.Bounds()
	img := image1bit.NewVerticalLSB(bounds)
	draw.Draw(img, img.Bounds(), toPortrait(e.img), image.Point{}, draw.Src)
	if err := e.panel.Draw(bounds, img, image.Point{}); err != nil {
		return fmt.Errorf("drawing to panel: %w", err)
	}
	if err := e.panel.Sleep(); err != nil {
		return fmt.Errorf("sleeping panel: %w", err)
	}
	return nil
}

// Close releases the SPI port. It does not halt the panel: the driver's Halt
// blanks the screen.
func (e *EPaper) Close() error {
	if e.port == nil {
		return nil
	}
	return e.port.Close()
}

// toPortrait rotates a landscape image a quarter turn clockwise.
func toPortrait(src *image.Gray) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, h, w))
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			dst.SetGray(x, y, src.GrayAt(y, h-1-x))
		}
	}
	return dst
}
