// Package render rasterizes hex cells to images for inspection.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gravitas-games/hexgeom/pkg/grid"
	"github.com/gravitas-games/hexgeom/pkg/hex"
)

// Fraction of the corner radius kept when filling; the rest shows as outline.
const inset = 0.85

var (
	DefaultBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	DefaultEdge       = color.RGBA{0x33, 0x33, 0x33, 0xff}
	DefaultFill       = color.RGBA{0xcc, 0xdd, 0xff, 0xff}
	DefaultMarker     = color.RGBA{0xcc, 0x22, 0x22, 0xff}
	DefaultLabel      = color.RGBA{0x99, 0x00, 0x00, 0xff}
)

type options struct {
	pixelsPerUnit float64
	padding       int
	labels        bool
	markers       []mgl64.Vec2
	background    color.Color
	edge          color.Color
	fill          color.Color
}

// Option configures Draw.
type Option func(*options)

// WithPixelsPerUnit sets how many pixels one plane unit spans.
func WithPixelsPerUnit(ppu float64) Option {
	return func(o *options) { o.pixelsPerUnit = ppu }
}

// WithPadding sets the margin around the drawing in pixels.
func WithPadding(px int) Option {
	return func(o *options) { o.padding = px }
}

// WithLabels writes each cell's canonical key at its center.
func WithLabels(on bool) Option {
	return func(o *options) { o.labels = on }
}

// WithMarkers draws small squares at the given plane points.
func WithMarkers(pts ...mgl64.Vec2) Option {
	return func(o *options) { o.markers = append(o.markers, pts...) }
}

// WithFill sets the cell fill color.
func WithFill(c color.Color) Option {
	return func(o *options) { o.fill = c }
}

// Draw renders cells under l. Plane y grows upward; image rows grow downward.
func Draw(l grid.Layout, cells []hex.Cube, opts ...Option) *image.RGBA {
	o := options{
		pixelsPerUnit: 50,
		padding:       5,
		background:    DefaultBackground,
		edge:          DefaultEdge,
		fill:          DefaultFill,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.pixelsPerUnit <= 0 {
		o.pixelsPerUnit = 50
	}
	if o.padding < 0 {
		o.padding = 0
	}

	corners := make([][6]mgl64.Vec2, len(cells))
	minP := mgl64.Vec2{math.Inf(1), math.Inf(1)}
	maxP := mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	extend := func(v mgl64.Vec2) {
		minP = mgl64.Vec2{math.Min(minP.X(), v.X()), math.Min(minP.Y(), v.Y())}
		maxP = mgl64.Vec2{math.Max(maxP.X(), v.X()), math.Max(maxP.Y(), v.Y())}
	}
	for i, c := range cells {
		corners[i] = l.Corners(c)
		for _, v := range corners[i] {
			extend(v)
		}
	}
	for _, m := range o.markers {
		extend(m)
	}
	if len(cells) == 0 && len(o.markers) == 0 {
		minP, maxP = mgl64.Vec2{}, mgl64.Vec2{}
	}

	w := int(math.Ceil((maxP.X()-minP.X())*o.pixelsPerUnit)) + 2*o.padding
	h := int(math.Ceil((maxP.Y()-minP.Y())*o.pixelsPerUnit)) + 2*o.padding
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.background), image.Point{}, draw.Src)

	toPixel := func(v mgl64.Vec2) (float32, float32) {
		x := float64(o.padding) + (v.X()-minP.X())*o.pixelsPerUnit
		y := float64(o.padding) + (maxP.Y()-v.Y())*o.pixelsPerUnit
		return float32(x), float32(y)
	}

	z := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	polygon := func(pts [6]mgl64.Vec2, col color.Color) {
		z.Reset(img.Bounds().Dx(), img.Bounds().Dy())
		z.DrawOp = draw.Over
		x, y := toPixel(pts[0])
		z.MoveTo(x, y)
		for _, p := range pts[1:] {
			x, y = toPixel(p)
			z.LineTo(x, y)
		}
		z.ClosePath()
		z.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{})
	}

	for i, c := range cells {
		center := l.Project(c)
		polygon(corners[i], o.edge)
		var inner [6]mgl64.Vec2
		for j, v := range corners[i] {
			inner[j] = center.Add(v.Sub(center).Mul(inset))
		}
		polygon(inner, o.fill)
	}

	for _, m := range o.markers {
		x, y := toPixel(m)
		r := image.Rect(int(x)-1, int(y)-1, int(x)+2, int(y)+2)
		draw.Draw(img, r, image.NewUniform(DefaultMarker), image.Point{}, draw.Src)
	}

	if o.labels {
		d := &font.Drawer{Dst: img, Src: image.NewUniform(DefaultLabel), Face: basicfont.Face7x13}
		for _, c := range cells {
			s := c.String()
			x, y := toPixel(l.Project(c))
			half := d.MeasureString(s) / 2
			d.Dot = fixed.Point26_6{
				X: fixed.I(int(x)) - half,
				Y: fixed.I(int(y) + 4),
			}
			d.DrawString(s)
		}
	}
	return img
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
