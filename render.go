package ambient

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandBox    CommandType = iota // filled layout box
	CommandCircle                    // filled circle (HitCircle nodes)
	CommandPath                      // stroked polyline
	CommandText                      // debug text at the box origin
)

// RenderCommand is a single draw instruction emitted during traversal.
type RenderCommand struct {
	Type      CommandType
	Node      *Node
	Transform [6]float64
	Color     Color // alpha already multiplied by the world alpha
}

// WhitePixel is a 1x1 white image used to draw solid boxes.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// collectCommands walks the tree depth-first in document order and appends a
// command for every visible piece of content.
func collectCommands(n *Node, parent [6]float64, parentAlpha float64, buf []RenderCommand) []RenderCommand {
	if !n.Visible || n.disposed {
		return buf
	}
	world := multiplyAffine(parent, computeLocalTransform(n, true))
	alpha := parentAlpha * n.Alpha
	if alpha > 0 {
		c := n.Color
		c.A *= alpha
		if n.Filled && n.Width > 0 && n.Height > 0 {
			kind := CommandBox
			if _, ok := n.HitShape.(HitCircle); ok {
				kind = CommandCircle
			}
			buf = append(buf, RenderCommand{Type: kind, Node: n, Transform: world, Color: c})
		}
		if len(n.Path) > 1 {
			buf = append(buf, RenderCommand{Type: CommandPath, Node: n, Transform: world, Color: c})
		}
		if n.Text != "" {
			buf = append(buf, RenderCommand{Type: CommandText, Node: n, Transform: world, Color: c})
		}
	}
	for _, child := range n.children {
		buf = collectCommands(child, world, alpha, buf)
	}
	return buf
}

// Renderer draws a document and an optional particle surface to an ebiten
// screen.
type Renderer struct {
	ClearColor Color
	commands   []RenderCommand
}

// Draw renders the particle surface (if any) behind the document tree.
func (r *Renderer) Draw(screen *ebiten.Image, doc *Document, surface *ImageSurface) {
	if r.ClearColor.A > 0 {
		screen.Fill(r.ClearColor.toRGBA())
	}
	if surface != nil && surface.Image() != nil {
		screen.DrawImage(surface.Image(), nil)
	}
	r.commands = collectCommands(doc.Root(), identityTransform, 1, r.commands[:0])
	for i := range r.commands {
		r.submit(screen, &r.commands[i])
	}
}

func (r *Renderer) submit(screen *ebiten.Image, cmd *RenderCommand) {
	n := cmd.Node
	m := cmd.Transform
	switch cmd.Type {
	case CommandBox:
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(n.Width, n.Height)
		var g ebiten.GeoM
		g.SetElement(0, 0, m[0])
		g.SetElement(1, 0, m[1])
		g.SetElement(0, 1, m[2])
		g.SetElement(1, 1, m[3])
		g.SetElement(0, 2, m[4])
		g.SetElement(1, 2, m[5])
		op.GeoM.Concat(g)
		op.ColorScale.ScaleWithColor(cmd.Color.toRGBA())
		screen.DrawImage(WhitePixel, &op)
	case CommandCircle:
		hc := n.HitShape.(HitCircle)
		cx, cy := transformPoint(m, hc.CenterX, hc.CenterY)
		scale := math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
		if rad := hc.Radius * scale; rad > 0 {
			vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(rad), cmd.Color.toRGBA(), true)
		}
	case CommandPath:
		pts := n.Path
		last := len(pts) - 1
		if n.PathClosed {
			last = len(pts)
		}
		for i := 0; i < last; i++ {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			x0, y0 := transformPoint(m, a.X, a.Y)
			x1, y1 := transformPoint(m, b.X, b.Y)
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, cmd.Color.toRGBA(), true)
		}
	case CommandText:
		x, y := transformPoint(m, 0, 0)
		ebitenutil.DebugPrintAt(screen, n.Text, int(x), int(y))
	}
}
