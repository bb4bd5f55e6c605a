// Package terminal is the local front-end: it draws game frames with tcell and
// turns key presses into game inputs.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Screen wraps tcell.Screen with the few calls the front-end needs.
type Screen struct {
	screen tcell.Screen
}

func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	return newScreen(s)
}

func newScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()

	return &Screen{screen: s}, nil
}

// Close - restores the terminal.
func (that *Screen) Close() {
	that.screen.Fini()
}

func (that *Screen) PollEvent() tcell.Event {
	return that.screen.PollEvent()
}

// Wake - unblocks PollEvent so the loop redraws.
func (that *Screen) Wake() {
	_ = that.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (that *Screen) Clear() {
	that.screen.Clear()
}

func (that *Screen) Show() {
	that.screen.Show()
}

func (that *Screen) Sync() {
	that.screen.Sync()
}

func (that *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	that.screen.SetContent(x, y, r, nil, style)
}

func (that *Screen) Text(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		that.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
