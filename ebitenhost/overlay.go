package ebitenhost

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/tween"
)

// overlayRefresh is how often, in seconds, the overlay text is rebuilt.
const overlayRefresh = 0.5

// maxOverlayLines limits the tweens listed by the overlay.
const maxOverlayLines = 8

// Overlay draws FPS, TPS and the scheduler's alive tweens in the top-left
// corner. The text is rebuilt every ~0.5 seconds.
type Overlay struct {
	tweens  *tween.Scheduler
	img     *ebiten.Image
	text    string
	elapsed float64
}

// NewOverlay creates an Overlay for tweens.
func NewOverlay(tweens *tween.Scheduler) *Overlay {
	return &Overlay{tweens: tweens, elapsed: overlayRefresh}
}

// Update advances the refresh timer by dt seconds.
func (o *Overlay) Update(dt float64) {
	o.elapsed += dt
	if o.elapsed < overlayRefresh {
		return
	}
	o.elapsed = 0
	o.text = statsText(o.tweens.Snapshot(), ebiten.ActualFPS(), ebiten.ActualTPS())
}

// Draw renders the last built text onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.text == "" {
		return
	}
	if o.img == nil {
		// 320x160 fits the header plus maxOverlayLines rows of debug font
		o.img = ebiten.NewImage(320, 160)
	}
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}

func statsText(snap tween.Snapshot, fps, tps float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f\nTPS: %.1f\n", fps, tps)
	fmt.Fprintf(&b, "Tweens: %d (max %d, cap %d)\n", snap.Alive, snap.MaxAlive, snap.Capacity)
	n := 0
	for _, group := range [][]tween.UnitInfo{snap.Update, snap.Fixed} {
		for _, u := range group {
			if u.Nested {
				continue
			}
			if n == maxOverlayLines {
				b.WriteString("...\n")
				return b.String()
			}
			n++
			fmt.Fprintf(&b, "%3.0f%% %s\n", u.Progress*100, u.Description)
		}
	}
	return b.String()
}
