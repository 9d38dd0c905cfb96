package tui

import (
	"cmp"
	"slices"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubeviz"
	"github.com/SeamusWaldron/cubeviz/pkg/orbit"
)

// Pixel is one canvas pixel: Empty, Body, or a sticker color.
type Pixel uint8

const (
	Empty Pixel = 0
	Body  Pixel = 7
)

const (
	pieceHalf   = 0.5
	stickerHalf = 0.42
)

// Canvas is a pixel grid drawn two pixels per terminal cell.
type Canvas struct {
	W, H int
	pix  []Pixel
}

// NewCanvas returns an empty canvas of w by h pixels. h is rounded up to
// an even number.
func NewCanvas(w, h int) *Canvas {
	w = max(w, 0)
	h = max(h, 0)
	h += h % 2
	return &Canvas{W: w, H: h, pix: make([]Pixel, w*h)}
}

// At returns the pixel at x, y.
func (c *Canvas) At(x, y int) Pixel {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return Empty
	}
	return c.pix[y*c.W+x]
}

// Clear resets every pixel to Empty.
func (c *Canvas) Clear() {
	clear(c.pix)
}

// Count returns how many pixels in columns [x0, x1) hold p.
func (c *Canvas) Count(p Pixel, x0, x1 int) int {
	n := 0
	for y := 0; y < c.H; y++ {
		for x := max(x0, 0); x < min(x1, c.W); x++ {
			if c.pix[y*c.W+x] == p {
				n++
			}
		}
	}
	return n
}

type quad struct {
	pts   [4]math32.Vector2
	depth float32
	fill  Pixel
}

// Draw paints the pieces of g as seen from cam, farthest faces first.
func (c *Canvas) Draw(cam *orbit.ViewCamera, g cubeviz.Group) {
	if c.W == 0 || c.H == 0 {
		return
	}
	aspect := float32(c.W) / float32(c.H)
	eye := cam.Position()

	var quads []quad
	for d := range g.Drawables() {
		m := d.Transform()
		home := d.Home().Vector3()
		stickers := d.Stickers()
		for side := range stickers {
			n := cubeviz.SideNormal(side)
			center := home.Add(n.MulScalar(pieceHalf))
			wc := center.MulMatrix4(&m)
			wn := n.MulMatrix4(&m)
			if wn.Dot(wc.Sub(eye)) >= 0 {
				continue
			}
			depth := wc.Sub(eye).Length()

			body, ok := c.project(cam, m, center, n, pieceHalf, aspect)
			if !ok {
				continue
			}
			quads = append(quads, quad{pts: body, depth: depth, fill: Body})
			if stickers[side] == cubeviz.None {
				continue
			}
			sticker, ok := c.project(cam, m, center, n, stickerHalf, aspect)
			if ok {
				// Stickers sort just in front of their own body face.
				quads = append(quads, quad{pts: sticker, depth: depth - 1e-4, fill: Pixel(stickers[side])})
			}
		}
	}

	slices.SortStableFunc(quads, func(a, b quad) int {
		return cmp.Compare(b.depth, a.depth)
	})
	for _, q := range quads {
		c.fill(q)
	}
}

// project returns the screen corners of the square of half size half
// centered at center with normal n, moved by m.
func (c *Canvas) project(cam *orbit.ViewCamera, m math32.Matrix4, center, n math32.Vector3, half float32, aspect float32) ([4]math32.Vector2, bool) {
	u, v := tangents(n)
	corners := [4]math32.Vector3{
		center.Add(u.MulScalar(-half)).Add(v.MulScalar(-half)),
		center.Add(u.MulScalar(half)).Add(v.MulScalar(-half)),
		center.Add(u.MulScalar(half)).Add(v.MulScalar(half)),
		center.Add(u.MulScalar(-half)).Add(v.MulScalar(half)),
	}
	var out [4]math32.Vector2
	for i, p := range corners {
		x, y, _, ok := cam.Project(p.MulMatrix4(&m), aspect)
		if !ok {
			return out, false
		}
		out[i] = math32.Vec2((x+1)/2*float32(c.W), (1-y)/2*float32(c.H))
	}
	return out, true
}

// tangents returns two unit vectors spanning the plane normal to an axis
// aligned n.
func tangents(n math32.Vector3) (math32.Vector3, math32.Vector3) {
	switch {
	case n.X != 0:
		return math32.Vec3(0, 1, 0), math32.Vec3(0, 0, 1)
	case n.Y != 0:
		return math32.Vec3(1, 0, 0), math32.Vec3(0, 0, 1)
	default:
		return math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0)
	}
}

// fill paints the convex quad q, testing pixel centers.
func (c *Canvas) fill(q quad) {
	lo, hi := q.pts[0], q.pts[0]
	for _, p := range q.pts[1:] {
		lo.SetMin(p)
		hi.SetMax(p)
	}
	x0 := max(int(math32.Floor(lo.X)), 0)
	x1 := min(int(math32.Ceil(hi.X)), c.W-1)
	y0 := max(int(math32.Floor(lo.Y)), 0)
	y1 := min(int(math32.Ceil(hi.Y)), c.H-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if inside(q.pts, math32.Vec2(float32(x)+0.5, float32(y)+0.5)) {
				c.pix[y*c.W+x] = q.fill
			}
		}
	}
}

func inside(pts [4]math32.Vector2, p math32.Vector2) bool {
	var pos, neg bool
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// String renders the canvas with one half block per pair of rows.
func (c *Canvas) String() string {
	styles := make(map[[2]Pixel]lipgloss.Style)
	style := func(top, bottom Pixel) lipgloss.Style {
		key := [2]Pixel{top, bottom}
		s, ok := styles[key]
		if !ok {
			s = lipgloss.NewStyle()
			if top != Empty {
				s = s.Foreground(pixelColor(top))
			}
			if bottom != Empty {
				s = s.Background(pixelColor(bottom))
			}
			styles[key] = s
		}
		return s
	}

	var b strings.Builder
	for y := 0; y < c.H; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.W; x++ {
			top, bottom := c.At(x, y), c.At(x, y+1)
			switch {
			case top == Empty && bottom == Empty:
				b.WriteByte(' ')
			case top == Empty:
				b.WriteString(lipgloss.NewStyle().Foreground(pixelColor(bottom)).Render("▄"))
			default:
				b.WriteString(style(top, bottom).Render("▀"))
			}
		}
	}
	return b.String()
}

func pixelColor(p Pixel) lipgloss.Color {
	if p == Body {
		return bodyColor
	}
	return lipgloss.Color(cubeviz.Color(p).Hex())
}
