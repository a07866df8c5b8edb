package preview

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/HugoSmits86/nativewebp"

	"github.com/tilecraft/isocam/pkg/blender"
)

var (
	rasterBackground = color.NRGBA{R: 0xfd, G: 0xf6, B: 0xe3, A: 0xff}
	rasterFrame      = color.NRGBA{R: 0x93, G: 0xa1, B: 0xa1, A: 0xff}
	rasterWire       = color.NRGBA{R: 0x2a, G: 0xa1, B: 0x98, A: 0xff}
)

// WebP renders the projected wireframe into a WebP image at the exact
// computed frame size plus padding, so the output doubles as a size check.
func WebP(d blender.Dimensions, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	sc := project(d)
	pad := int(r.padding)

	w := int(math.Round(sc.width)) + 2*pad
	h := int(math.Round(sc.height)) + 2*pad
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill(img, rasterBackground)

	// Frame rectangle.
	fw, fh := int(math.Round(sc.width)), int(math.Round(sc.height))
	drawRect(img, pad, pad, fw, fh, rasterFrame)

	// Wireframe edges.
	for _, e := range boxEdges {
		a, b := sc.points[e[0]], sc.points[e[1]]
		drawLine(img,
			int(math.Round(a.x))+pad, int(math.Round(a.y))+pad,
			int(math.Round(b.x))+pad, int(math.Round(b.y))+pad,
			rasterWire)
	}

	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fill(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// drawRect draws an axis-aligned rectangle outline.
func drawRect(img *image.NRGBA, x, y, w, h int, c color.NRGBA) {
	drawLine(img, x, y, x+w, y, c)
	drawLine(img, x+w, y, x+w, y+h, c)
	drawLine(img, x+w, y+h, x, y+h, c)
	drawLine(img, x, y+h, x, y, c)
}

// drawLine rasterizes a line segment with the integer Bresenham walk.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetNRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
