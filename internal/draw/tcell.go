package draw

import "github.com/gdamore/tcell/v2"

// Tcell presents canvases on a tcell screen.
type Tcell struct {
	screen tcell.Screen
}

// NewTcell wraps an initialized tcell screen.
func NewTcell(screen tcell.Screen) *Tcell {
	return &Tcell{screen: screen}
}

// Size reports the screen size. It satisfies TermSizeFunc.
func (t *Tcell) Size() (int, int, error) {
	w, h := t.screen.Size()
	return w, h, nil
}

// Present copies all cells to the screen and shows it.
// tcell diffs against its own back buffer, so every cell is set each frame.
func (t *Tcell) Present(c *Canvas) error {
	cells := c.Cells()
	width := c.TerminalWidth()

	t.screen.Clear()
	for i, cell := range cells {
		style := tcell.StyleDefault
		if cell.Ch != BlockEmpty {
			style = style.Foreground(tcellColor(cell.Fg))
		}
		if cell.HasBg {
			style = style.Background(tcellColor(cell.Bg))
		}
		t.screen.SetContent(c.OffsetCol()+i%width, c.OffsetRow()+i/width, cell.Ch, nil, style)
	}
	t.screen.Show()
	return nil
}

func tcellColor(c RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Ensure Tcell satisfies Display and its Size method satisfies TermSizeFunc.
var (
	_ Display      = (*Tcell)(nil)
	_ TermSizeFunc = (*Tcell)(nil).Size
)
