package ambient

const (
	glyphWidth   = 12
	glyphHeight  = 16
	clusterSpace = 12
)

// TitleCluster is one word of a kinetic title and the physics variant its
// glyphs get ("explode", "orbit", "wave" or "magnetize").
type TitleCluster struct {
	Text    string
	Physics string
}

// NewKineticTitle builds a .kinetic-title node: one .word-cluster per
// cluster carrying data-physics, and one .char glyph per non-space rune.
// Glyphs start hidden, slightly below their rest position, until the
// sequencer reveals them.
func NewKineticTitle(name string, clusters ...TitleCluster) *Node {
	title := NewNode(name, "kinetic-title")
	x := 0.0
	for _, c := range clusters {
		cluster := NewNode("", "word-cluster")
		cluster.SetAttr("data-physics", c.Physics)
		cluster.SetBox(x, 0, 0, glyphHeight)
		gx := 0.0
		for _, r := range c.Text {
			if r == ' ' {
				gx += glyphWidth
				continue
			}
			g := NewNode("", "char")
			g.Text = string(r)
			g.SetBox(gx, 0, glyphWidth, glyphHeight)
			g.Alpha = 0
			g.TranslateY = 20
			cluster.AddChild(g)
			gx += glyphWidth
		}
		cluster.Width = gx
		title.AddChild(cluster)
		x += gx + clusterSpace
	}
	title.Width = max(x-clusterSpace, 0)
	title.Height = glyphHeight
	return title
}
