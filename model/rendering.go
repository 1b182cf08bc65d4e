package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	macosClearCmd = "clear"

	classGlyphs = "123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// ClassGlyph returns the character drawn for a live cell of the given class
func ClassGlyph(class int) rune {
	if class < 1 || class > len(classGlyphs) {
		return '#'
	}
	return rune(classGlyphs[class-1])
}

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	// Out defaults to os.Stdout
	Out io.Writer
}

func (r *TerminalRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Display renders the grid. Single-class boards draw blocks, multi-class
// boards draw one glyph per class.
func (r *TerminalRenderer) Display(g *Grid, classCount int) {
	var sb strings.Builder
	for row := range g.rows {
		for col := range g.cols {
			v := g.cells[row][col]
			switch {
			case v == 0:
				sb.WriteString(gridPosEmpty)
			case classCount <= 1:
				sb.WriteString(gridPosBlock)
			default:
				sb.WriteRune(ClassGlyph(v))
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprint(r.out(), sb.String())
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(macosClearCmd)
	cmd.Stdout = r.out()
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.out(), "Error clearing terminal:", err)
	}
}
