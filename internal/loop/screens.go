package loop

import (
	"fmt"

	"github.com/tomz197/colorcatch/internal/draw"
	"github.com/tomz197/colorcatch/internal/object"
)

// HUD layout in logical units.
const (
	hudMargin      = 10
	hudLabelInset  = 220 // "Target:" label, from the right edge
	hudSwatchInset = 150 // Target swatch, from the right edge
	hudSwatchSize  = 20
)

// drawHUD draws the score and the target color.
func (g *Game) drawHUD(ctx object.DrawContext) {
	w := g.settings.Width

	object.Text{
		X:     hudMargin,
		Y:     hudMargin,
		Value: fmt.Sprintf("Score: %d", g.session.Score),
		Color: draw.White,
	}.Draw(ctx)

	object.Text{
		X:     w - hudLabelInset,
		Y:     hudMargin,
		Value: "Target:",
		Color: draw.White,
	}.Draw(ctx)

	object.Swatch{
		X:     w - hudSwatchInset,
		Y:     hudMargin,
		Size:  hudSwatchSize,
		Color: g.session.Target,
	}.Draw(ctx)
}

// drawIdleScreen draws the start prompt over the frozen last frame.
func drawIdleScreen(canvas *draw.Canvas, game *Game) {
	game.Draw(canvas)

	centerX := canvas.TerminalWidth() / 2
	centerY := canvas.TerminalHeight() / 2

	title := "C O L O R C A T C H"
	canvas.TextAt(centerX-len(title)/2, centerY-3, title, draw.White)

	if s := game.Session(); s != nil {
		score := fmt.Sprintf("Last score: %d", s.Score)
		canvas.TextAt(centerX-len(score)/2, centerY-1, score, draw.White)
	}

	prompt := "Press SPACE to Start"
	canvas.TextAt(centerX-len(prompt)/2, centerY+1, prompt, draw.White)

	controls := "Catch the target color. A/D, arrows or mouse to move, ESC to stop, Q to quit"
	canvas.TextAt(centerX-len(controls)/2, centerY+3, controls, draw.White)
}

// drawShutdownScreen tells the player the server is going away.
func drawShutdownScreen(canvas *draw.Canvas, game *Game, remaining int) {
	game.Draw(canvas)

	centerX := canvas.TerminalWidth() / 2
	centerY := canvas.TerminalHeight() / 2

	title := "SERVER SHUTTING DOWN"
	canvas.TextAt(centerX-len(title)/2, centerY-1, title, draw.White)

	msg := fmt.Sprintf("Disconnecting in %d...", remaining)
	canvas.TextAt(centerX-len(msg)/2, centerY+1, msg, draw.White)
}
