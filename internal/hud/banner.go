package hud

import (
	"fmt"

	"github.com/soleneko/starfall/internal/core"
	"github.com/soleneko/starfall/internal/event"
	"github.com/soleneko/starfall/internal/progress"
	"github.com/soleneko/starfall/internal/timer"
)

const bannerKey = "hud.level_banner"

// LevelBanner shows "LEVEL N" for a fixed number of ticks whenever the
// level changes, then hides itself. A new level arriving mid-display
// replaces the pending hide, restarting the countdown.
type LevelBanner struct {
	sched    *timer.Scheduler
	duration int
	sub      event.Subscription
	level    int
	visible  bool
}

// NewLevelBanner creates a banner subscribed to level changes on the bus.
// durationTicks is how long the banner stays up.
func NewLevelBanner(bus *event.Bus, sched *timer.Scheduler, durationTicks int) *LevelBanner {
	b := &LevelBanner{
		sched:    sched,
		duration: core.Max(1, durationTicks),
	}
	if bus != nil {
		b.sub = bus.Subscribe(event.LevelChanged, func(e event.Event) {
			if lv, ok := e.Payload.(progress.LevelEvent); ok {
				b.Show(lv.Level)
			}
		})
	}
	return b
}

// Show displays the banner for the configured duration.
func (b *LevelBanner) Show(level int) {
	b.level = level
	b.visible = true
	b.sched.After(bannerKey, b.duration, func() {
		b.visible = false
	})
}

// Visible reports whether the banner is currently displayed.
func (b *LevelBanner) Visible() bool {
	return b.visible
}

// Level returns the level the banner is (or was last) showing.
func (b *LevelBanner) Level() int {
	return b.level
}

// Close releases the bus subscription.
func (b *LevelBanner) Close() {
	b.sub.Cancel()
	b.sched.Cancel(bannerKey)
}

// Render draws the banner centered near the top of the screen.
// A hidden banner draws nothing.
func (b *LevelBanner) Render(dst *core.Screen) {
	if !b.visible {
		return
	}

	text := fmt.Sprintf(" LEVEL %d ", b.level)
	boxW := len(text) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := dst.Height() / 4

	box := core.NewRect(boxX, boxY, boxW, 3)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColored(boxX+1, boxY+1, text, core.ColorBrightYellow)
}
