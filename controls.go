package main

import "github.com/gdamore/tcell/v2"

type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdPause
	cmdRandomize
	cmdRestart
	cmdStep
)

// commandForKey maps a key press to a control signal
func commandForKey(ev *tcell.EventKey) command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit
	case tcell.KeyRune:
	default:
		return cmdNone
	}

	switch ev.Rune() {
	case 'q':
		return cmdQuit
	case ' ':
		return cmdPause
	case 'r':
		return cmdRandomize
	case 's':
		return cmdRestart
	case 'n':
		return cmdStep
	}
	return cmdNone
}
