package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"runeguard/internal/sim"
)

// Status is the data shown in the status bar.
type Status struct {
	Player     string
	Level      int
	Levels     int
	Score      int
	RunesLeft  int
	Stamina    float64
	MaxStamina float64
	Sprinting  bool
	Guards     []sim.GuardView
	Messages   []string
}

// DrawHUD renders the status bar and message log at the bottom of the screen.
func (r *Renderer) DrawHUD(st Status) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows

	r.drawHLine(hudY, tcell.ColorGray)

	line := fmt.Sprintf("Level %d/%d  Score %d  Runes left %d  Stamina %s",
		st.Level, st.Levels, st.Score, st.RunesLeft, staminaBar(st.Stamina, st.MaxStamina, 10))
	if st.Sprinting {
		line += " SPRINT"
	}
	if st.Player != "" {
		line = "[" + st.Player + "]  " + line
	}
	r.drawText(0, hudY+1, line, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	x := 0
	for _, g := range st.Guards {
		label := fmt.Sprintf("g%d:%s ", g.ID, g.State)
		r.drawText(x, hudY+2, label, tcell.StyleDefault.Foreground(stateColors[g.State]))
		x += runewidth.StringWidth(label)
	}

	// Last two messages.
	msgs := st.Messages[max(0, len(st.Messages)-2):]
	for i, msg := range msgs {
		r.drawText(0, hudY+3+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
}

// staminaBar renders v/maxV as a fixed-width bar.
func staminaBar(v, maxV float64, width int) string {
	filled := 0
	if maxV > 0 {
		filled = int(v / maxV * float64(width))
	}
	filled = clamp(filled, 0, width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// DrawPanel draws a centred box of lines, used for lore and catch screens.
func (r *Renderer) DrawPanel(title string, lines []string, hint string) {
	r.screen.Clear()
	width := runewidth.StringWidth(title) + 4
	for _, l := range append(lines, hint) {
		width = max(width, runewidth.StringWidth(l)+4)
	}
	sw, sh := r.screen.Size()
	boxH := len(lines) + 4
	x0 := max(0, (sw-width)/2)
	y0 := max(0, (sh-boxH)/2)
	border := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for col := x0; col < x0+width; col++ {
		r.screen.SetContent(col, y0, '─', nil, border)
		r.screen.SetContent(col, y0+boxH-1, '─', nil, border)
	}
	for row := y0; row < y0+boxH; row++ {
		r.screen.SetContent(x0, row, '│', nil, border)
		r.screen.SetContent(x0+width-1, row, '│', nil, border)
	}
	r.screen.SetContent(x0, y0, '┌', nil, border)
	r.screen.SetContent(x0+width-1, y0, '┐', nil, border)
	r.screen.SetContent(x0, y0+boxH-1, '└', nil, border)
	r.screen.SetContent(x0+width-1, y0+boxH-1, '┘', nil, border)

	hx := x0 + (width-runewidth.StringWidth(title))/2
	r.drawText(hx, y0, title, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	for i, l := range lines {
		r.drawText(x0+2, y0+1+i, l, tcell.StyleDefault.Foreground(tcell.ColorSilver))
	}
	r.drawText(x0+2, y0+boxH-2, hint, tcell.StyleDefault.Foreground(tcell.ColorGray))
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
}
