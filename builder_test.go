package ambient

import "testing"

func TestNewKineticTitle(t *testing.T) {
	title := NewKineticTitle("hero",
		TitleCluster{Text: "Go on", Physics: "wave"},
		TitleCluster{Text: "now", Physics: "explode"},
	)
	if !title.HasClass("kinetic-title") {
		t.Fatal("missing kinetic-title class")
	}
	clusters := title.Children()
	if len(clusters) != 2 {
		t.Fatalf("clusters = %d, want 2", len(clusters))
	}

	tests := []struct {
		physics string
		x       float64
		width   float64
		glyphs  string
	}{
		{"wave", 0, 60, "Goon"},
		{"explode", 72, 36, "now"},
	}
	for i, tt := range tests {
		c := clusters[i]
		if !c.HasClass("word-cluster") {
			t.Errorf("cluster %d missing word-cluster class", i)
		}
		if p, _ := c.Attr("data-physics"); p != tt.physics {
			t.Errorf("cluster %d physics = %q, want %q", i, p, tt.physics)
		}
		if c.X != tt.x || c.Width != tt.width {
			t.Errorf("cluster %d box x=%v w=%v, want x=%v w=%v", i, c.X, c.Width, tt.x, tt.width)
		}
		got := ""
		for _, g := range c.Children() {
			if !g.HasClass("char") {
				t.Errorf("glyph %q missing char class", g.Text)
			}
			if g.Width != glyphWidth || g.Height != glyphHeight {
				t.Errorf("glyph %q size %vx%v", g.Text, g.Width, g.Height)
			}
			if g.Alpha != 0 || g.TranslateY != 20 {
				t.Errorf("glyph %q starts visible", g.Text)
			}
			got += g.Text
		}
		if got != tt.glyphs {
			t.Errorf("cluster %d glyphs = %q, want %q", i, got, tt.glyphs)
		}
	}

	// "Go on": the space advances the pen without a glyph.
	if x := clusters[0].Children()[2].X; x != 36 {
		t.Errorf("glyph after space at x=%v, want 36", x)
	}
	if title.Width != 108 || title.Height != glyphHeight {
		t.Errorf("title size %vx%v, want 108x%v", title.Width, title.Height, glyphHeight)
	}
}

func TestNewKineticTitleEmpty(t *testing.T) {
	title := NewKineticTitle("empty")
	if title.Width != 0 || len(title.Children()) != 0 {
		t.Errorf("empty title width %v children %d", title.Width, len(title.Children()))
	}
}
