package preview

import (
	"bytes"
	"fmt"

	"github.com/tilecraft/isocam/pkg/blender"
)

// SVG renders the projected wireframe as an SVG document. The dashed frame
// rectangle matches the computed image size; the wireframe sits inside it.
func SVG(d blender.Dimensions, opts ...Option) []byte {
	r := newRenderer(opts...)
	sc := project(d)
	st := blender.Compute(d)
	pad := r.padding

	totalW := sc.width + 2*pad
	totalH := sc.height + 2*pad

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		totalW, totalH, totalW, totalH)
	buf.WriteString(`  <rect width="100%" height="100%" fill="#fdf6e3"/>` + "\n")

	// Frame rectangle: the exported image bounds.
	fmt.Fprintf(&buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#93a1a1" stroke-dasharray="4 3"/>`+"\n",
		pad, pad, sc.width, sc.height)

	// Wireframe edges.
	for _, e := range boxEdges {
		a, b := sc.points[e[0]], sc.points[e[1]]
		fmt.Fprintf(&buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1.5"/>`+"\n",
			a.x+pad, a.y+pad, b.x+pad, b.y+pad, r.stroke)
	}

	// Caption with the derived settings.
	fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="10" fill="#586e75">%dx%d scale %.5f</text>`+"\n",
		pad, totalH-4, st.Width, st.Height, st.Scale)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
