package model

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var classColors = []tcell.Color{
	tcell.ColorGreen,
	tcell.ColorRed,
	tcell.ColorBlue,
	tcell.ColorYellow,
	tcell.ColorFuchsia,
	tcell.ColorAqua,
	tcell.ColorOrange,
	tcell.ColorPurple,
	tcell.ColorSilver,
}

// ClassColor returns the background color of a live cell
func ClassColor(class, classCount int) tcell.Color {
	if classCount <= 1 {
		return tcell.ColorWhite
	}
	if class >= 1 && class <= len(classColors) {
		return classColors[class-1]
	}
	// xterm 6x6x6 cube
	return tcell.PaletteColor(16 + (class*37)%216)
}

// ScreenRenderer draws grids on a tcell screen, two columns per cell, with a
// status line under the board.
type ScreenRenderer struct {
	screen tcell.Screen
}

func NewScreenRenderer(screen tcell.Screen) *ScreenRenderer {
	return &ScreenRenderer{screen: screen}
}

// BoardShape returns the largest board that fits the screen above the status line
func (r *ScreenRenderer) BoardShape() (rows, cols int) {
	w, h := r.screen.Size()
	return max(h-1, 1), max(w/2, 1)
}

// Display draws g and status, clipping whatever does not fit
func (r *ScreenRenderer) Display(g *Grid, classCount int, status string) {
	r.screen.Clear()
	w, h := r.screen.Size()

	rows := min(g.rows, h-1)
	for row := 0; row < rows; row++ {
		for col := 0; col < g.cols && 2*col+1 < w; col++ {
			var (
				v     = g.cells[row][col]
				ch    = ' '
				style = tcell.StyleDefault
			)
			if v > 0 {
				style = style.Background(ClassColor(v, classCount))
				if classCount > 1 {
					ch = ClassGlyph(v)
					style = style.Foreground(tcell.ColorBlack)
				}
			}
			r.screen.SetContent(2*col, row, ch, nil, style)
			r.screen.SetContent(2*col+1, row, ' ', nil, style)
		}
	}

	statusRow := max(rows, 0)
	for i, ch := range []rune(status) {
		if i >= w {
			break
		}
		r.screen.SetContent(i, statusRow, ch, nil, tcell.StyleDefault.Bold(true))
	}
	r.screen.Show()
}

// CensusLine formats a census as "class: count" pairs
func CensusLine(census []ClassCount) string {
	parts := make([]string, 0, len(census))
	for _, c := range census {
		parts = append(parts, fmt.Sprintf("%d: %d", c.Class, c.Count))
	}
	return strings.Join(parts, " ")
}
