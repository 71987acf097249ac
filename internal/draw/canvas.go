package draw

import "math"

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Cell is one composed terminal cell.
// Fg colors the glyph; Bg is only set when a half block needs two colors.
type Cell struct {
	Ch    rune
	Fg    RGB
	Bg    RGB
	HasBg bool
}

var blankCell = Cell{Ch: BlockEmpty}

// textRun is a string queued for overlay at a terminal cell (0-based).
type textRun struct {
	col, row int
	s        string
	c        RGB
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int   // Render area columns
	termHeight     int   // Render area rows
	subPixelHeight int   // termHeight * 2
	pixels         []RGB // Flat slice: [y * termWidth + x]
	lit            []bool

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset of the render area inside the terminal (0-based columns/rows to skip).
	offsetCol int
	offsetRow int

	texts []textRun
	cells []Cell // Reused output of Cells
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the render area dimensions in terminal cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new render dimensions while keeping logical size.
// The current picture is discarded when the size changes.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]RGB, subPixelHeight*termWidth)
		c.lit = make([]bool, subPixelHeight*termWidth)
		c.cells = make([]Cell, termWidth*termHeight)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels and queued text.
func (c *Canvas) Clear() {
	clear(c.lit)
	c.texts = c.texts[:0]
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col RGB) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.pixels[i] = col
		c.lit[i] = true
	}
}

// Pixel reports the color of a pixel in render coordinates and whether it is set.
func (c *Canvas) Pixel(x, y int) (RGB, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return RGB{}, false
	}
	i := y*c.termWidth + x
	return c.pixels[i], c.lit[i]
}

// FillCircle fills every pixel whose center lies inside the circle.
// A circle too small to cover any pixel center still lights the pixel under its center.
func (c *Canvas) FillCircle(cx, cy, r float64, col RGB) {
	x0 := int(math.Floor((cx - r) * c.scaleX))
	x1 := int(math.Ceil((cx + r) * c.scaleX))
	y0 := int(math.Floor((cy - r) * c.scaleY))
	y1 := int(math.Ceil((cy + r) * c.scaleY))

	r2 := r * r
	hit := false
	for py := y0; py <= y1; py++ {
		dy := float64(py)/c.scaleY - cy
		for px := x0; px <= x1; px++ {
			dx := float64(px)/c.scaleX - cx
			if dx*dx+dy*dy <= r2 {
				c.setPixel(px, py, col)
				hit = true
			}
		}
	}
	if !hit {
		c.setPixel(int(math.Round(cx*c.scaleX)), int(math.Round(cy*c.scaleY)), col)
	}
}

// FillRect fills an axis-aligned rectangle. Any non-empty rectangle covers at least one pixel.
func (c *Canvas) FillRect(x, y, w, h float64, col RGB) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := int(math.Round(x * c.scaleX))
	y0 := int(math.Round(y * c.scaleY))
	x1 := max(int(math.Round((x+w)*c.scaleX)), x0+1)
	y1 := max(int(math.Round((y+h)*c.scaleY)), y0+1)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// Text queues s for overlay at the cell containing logical point (x, y).
func (c *Canvas) Text(x, y float64, s string, col RGB) {
	if s == "" {
		return
	}
	cellCol := int(math.Round(x * c.scaleX))
	cellRow := int(math.Round(y*c.scaleY)) / 2
	c.texts = append(c.texts, textRun{col: cellCol, row: cellRow, s: s, c: col})
}

// TextAt queues s at a render-area cell (0-based), bypassing scaling.
// Used for UI that must stay readable at any size.
func (c *Canvas) TextAt(col, row int, s string, fg RGB) {
	if s == "" {
		return
	}
	c.texts = append(c.texts, textRun{col: col, row: row, s: s, c: fg})
}

// Cells composes pixels and text into terminal cells, row-major.
// The returned slice is reused by the next call.
func (c *Canvas) Cells() []Cell {
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.lit[topOffset+col]
			bottom := c.lit[bottomOffset+col]
			topColor := c.pixels[topOffset+col]
			bottomColor := c.pixels[bottomOffset+col]

			cell := blankCell
			switch {
			case top && bottom && topColor == bottomColor:
				cell = Cell{Ch: BlockFull, Fg: topColor}
			case top && bottom:
				cell = Cell{Ch: BlockUpperHalf, Fg: topColor, Bg: bottomColor, HasBg: true}
			case top:
				cell = Cell{Ch: BlockUpperHalf, Fg: topColor}
			case bottom:
				cell = Cell{Ch: BlockLowerHalf, Fg: bottomColor}
			}
			c.cells[row*c.termWidth+col] = cell
		}
	}

	for _, t := range c.texts {
		if t.row < 0 || t.row >= c.termHeight {
			continue
		}
		col := t.col
		for _, r := range t.s {
			if col >= 0 && col < c.termWidth {
				c.cells[t.row*c.termWidth+col] = Cell{Ch: r, Fg: t.c}
			}
			col++
		}
	}

	return c.cells
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// ColumnToLogical converts a 1-based terminal column into a logical x coordinate.
func (c *Canvas) ColumnToLogical(col int) float64 {
	return float64(col-1-c.offsetCol) / c.scaleX
}

// FitAspect computes the largest render area inside a terminal that keeps the
// logical aspect ratio, assuming terminal cells are twice as tall as wide.
// The area is centered; offsets are 0-based.
func FitAspect(termWidth, termHeight int, logicalWidth, logicalHeight float64) (width, height, offsetCol, offsetRow int) {
	ratio := logicalWidth / logicalHeight // columns per sub-pixel row
	width = termWidth
	height = int(float64(width) / ratio / 2)
	if height > termHeight {
		height = termHeight
		width = int(float64(height) * 2 * ratio)
	}
	width = max(width, 1)
	height = max(height, 1)
	offsetCol = max((termWidth-width)/2, 0)
	offsetRow = max((termHeight-height)/2, 0)
	return
}
