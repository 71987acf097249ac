package draw

import "io"

// ANSI presents canvases as escape sequences on a plain writer.
// Only cells that changed since the previous frame are written.
type ANSI struct {
	cw          *ChunkWriter
	prev        []Cell
	prevWidth   int
	prevHeight  int
	prevOffCol  int
	prevOffRow  int
	forceRedraw bool
}

// NewANSI creates an ANSI display writing to w.
func NewANSI(w io.Writer) *ANSI {
	return &ANSI{
		cw:          NewChunkWriter(w, 0, 0),
		forceRedraw: true,
	}
}

// ForceRedraw makes the next Present clear the terminal and repaint every cell.
func (a *ANSI) ForceRedraw() {
	a.forceRedraw = true
}

// Present writes the cells that changed since the last frame.
func (a *ANSI) Present(c *Canvas) error {
	cells := c.Cells()
	width, height := c.TerminalWidth(), c.TerminalHeight()

	if width != a.prevWidth || height != a.prevHeight ||
		c.OffsetCol() != a.prevOffCol || c.OffsetRow() != a.prevOffRow {
		a.forceRedraw = true
	}
	if a.forceRedraw {
		// Clearing the terminal removes residue outside a shrunken render area.
		a.cw.ResetStyle()
		a.cw.WriteString("\033[H\033[2J")
		a.prev = make([]Cell, len(cells))
		for i := range a.prev {
			a.prev[i] = blankCell
		}
		a.prevWidth, a.prevHeight = width, height
		a.prevOffCol, a.prevOffRow = c.OffsetCol(), c.OffsetRow()
		a.forceRedraw = false
	}
	a.cw.SetOffset(c.OffsetCol(), c.OffsetRow())

	for i, cell := range cells {
		if cell == a.prev[i] {
			continue
		}
		a.cw.MoveCursor(i%width+1, i/width+1)
		if cell.Ch == BlockEmpty {
			a.cw.ResetStyle()
		} else if cell.HasBg {
			bg := cell.Bg
			a.cw.SetColors(cell.Fg, &bg)
		} else {
			a.cw.SetColors(cell.Fg, nil)
		}
		a.cw.WriteRune(cell.Ch)
		a.prev[i] = cell
	}
	a.cw.ResetStyle()

	return a.cw.Flush()
}

// Ensure ANSI satisfies Display.
var _ Display = (*ANSI)(nil)
