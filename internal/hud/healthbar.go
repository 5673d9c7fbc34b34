// Package hud draws shared in-game widgets onto the core screen buffer:
// proportional health bars and the timed level banner.
package hud

import (
	"fmt"

	"github.com/soleneko/starfall/internal/actor"
	"github.com/soleneko/starfall/internal/core"
)

const (
	barFilled = '█'
	barEmpty  = '░'
)

// HealthBar renders an actor's health as "LABEL cur/max" plus a
// proportional bar, colored by how much is left.
type HealthBar struct {
	label  string
	health *actor.Health
}

// NewHealthBar creates a bar bound to the given health pool.
func NewHealthBar(label string, h *actor.Health) *HealthBar {
	return &HealthBar{label: label, health: h}
}

// Render draws the bar at (x, y) with barWidth cells of bar.
func (b *HealthBar) Render(dst *core.Screen, x, y, barWidth int) {
	text := fmt.Sprintf("%s %d/%d ", b.label, b.health.Current(), b.health.Max())
	dst.DrawText(x, y, text)

	frac := b.health.Fraction()
	filled := int(frac*float64(barWidth) + 0.5)
	filled = core.Clamp(filled, 0, barWidth)
	if b.health.Current() > 0 && filled == 0 {
		filled = 1 // Never show an empty bar while still alive
	}

	color := barColor(frac)
	bx := x + len(text)
	for i := 0; i < barWidth; i++ {
		if i < filled {
			dst.SetColored(bx+i, y, barFilled, color)
		} else {
			dst.SetColored(bx+i, y, barEmpty, core.ColorGray)
		}
	}
}

// barColor picks green/yellow/red by remaining fraction.
func barColor(frac float64) core.Color {
	switch {
	case frac > 0.6:
		return core.ColorGreen
	case frac > 0.3:
		return core.ColorYellow
	default:
		return core.ColorRed
	}
}
