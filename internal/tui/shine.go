package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// shineTickMsg is sent on every animation frame.
type shineTickMsg struct{}

// ShineState animates a light sweep across the selected card's title. When
// animations are off (or the terminal lacks truecolor) it degrades to a
// static highlight.
type ShineState struct {
	active    bool
	truecolor bool
	center    float64
	paused    bool
	pausedAt  time.Time
}

const (
	shineSpeed      = 100 * time.Millisecond
	shinePause      = 600 * time.Millisecond
	shineWidthRatio = 0.3
)

// NewShineState creates the sweep state. enabled follows the animations
// config setting.
func NewShineState(enabled bool) *ShineState {
	return &ShineState{
		active:    enabled,
		truecolor: os.Getenv("COLORTERM") == "truecolor",
	}
}

// Active reports whether the view should schedule shine ticks.
func (s *ShineState) Active() bool { return s.active }

// TickInterval returns the frame interval for tea.Tick.
func (s *ShineState) TickInterval() time.Duration { return shineSpeed }

// Reset restarts the sweep, used when the selection changes.
func (s *ShineState) Reset() {
	s.center = 0
	s.paused = false
}

// advance moves the sweep one frame across width glyphs.
func (s *ShineState) advance(width int) {
	if width <= 0 {
		return
	}
	if s.paused {
		if time.Since(s.pausedAt) >= shinePause {
			s.paused = false
			s.center = -float64(width) * shineWidthRatio
		}
		return
	}
	s.center += float64(width) / 14
	if s.center >= float64(width)*(1+shineWidthRatio) {
		s.paused = true
		s.pausedAt = time.Now()
	}
}

// Render draws text with the sweep highlight at the current position.
func (s *ShineState) Render(text string) string {
	if text == "" {
		return text
	}
	if !s.active || !s.truecolor {
		return fmt.Sprintf("\033[38;2;94;234;212m%s\033[0m", text)
	}
	s.advance(len(text))

	// Base #A8BDB9 blended toward highlight #D9FFF8 on a bell curve.
	sigma := shineWidthRatio * float64(len(text)) / 2
	if sigma < 1 {
		sigma = 1
	}
	var b strings.Builder
	for i, ch := range text {
		dx := float64(i) - s.center
		w := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		r := int(168*(1-w) + 217*w)
		g := int(189*(1-w) + 255*w)
		bl := int(185*(1-w) + 248*w)
		fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm%c", r, g, bl, ch)
	}
	b.WriteString("\033[0m")
	return b.String()
}
