// Package ebitenhost drives a tween Scheduler from an Ebitengine game loop.
//
// Wrap your game in a [Driver] and pass the driver to ebiten.RunGame:
//
//	tweens := tween.New(tween.DefaultConfig())
//	ebiten.RunGame(ebitenhost.New(tweens, game))
//
// Every Update the driver advances fixed-update tweens by one tick
// (1/TPS seconds) and regular tweens by the wall time since the previous
// Update, then calls the wrapped game's Update. Draw and Layout are passed
// through unchanged.
package ebitenhost

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/phanxgames/tween"
)

// DefaultMaxDelta caps the measured frame time, so a stall (window drag,
// breakpoint) does not make every tween jump to its end.
const DefaultMaxDelta = 0.25

// Driver is an ebiten.Game that ticks a Scheduler before delegating to an
// inner game.
type Driver struct {
	tweens   *tween.Scheduler
	game     ebiten.Game
	overlay  *Overlay
	log      zerolog.Logger
	maxDelta float64

	// now and tps are swapped in tests.
	now  func() time.Time
	tps  func() int
	last time.Time
}

// New creates a Driver for tweens wrapping game. game must not be nil.
func New(tweens *tween.Scheduler, game ebiten.Game) *Driver {
	return &Driver{
		tweens:   tweens,
		game:     game,
		log:      zerolog.Nop(),
		maxDelta: DefaultMaxDelta,
		now:      time.Now,
		tps:      ebiten.TPS,
	}
}

// SetLogger sets the logger used for frame timing diagnostics.
func (d *Driver) SetLogger(l zerolog.Logger) {
	d.log = l
}

// SetMaxDelta sets the largest frame time passed to Tick. Values <= 0
// disable the cap.
func (d *Driver) SetMaxDelta(seconds float64) {
	d.maxDelta = seconds
}

// ShowStats toggles the stats overlay drawn on top of the inner game.
func (d *Driver) ShowStats(show bool) {
	if !show {
		d.overlay = nil
		return
	}
	if d.overlay == nil {
		d.overlay = NewOverlay(d.tweens)
	}
}

// Scheduler returns the driven scheduler.
func (d *Driver) Scheduler() *tween.Scheduler {
	return d.tweens
}

// Update ticks both tween groups and then the inner game.
func (d *Driver) Update() error {
	if tps := d.tps(); tps > 0 {
		d.tweens.TickFixed(1 / float64(tps))
	}
	dt := d.delta()
	d.tweens.Tick(dt)
	if d.overlay != nil {
		d.overlay.Update(dt)
	}
	return d.game.Update()
}

// delta returns the seconds since the previous Update, 0 on the first one.
func (d *Driver) delta() float64 {
	now := d.now()
	if d.last.IsZero() {
		d.last = now
		return 0
	}
	dt := now.Sub(d.last).Seconds()
	d.last = now
	if dt < 0 {
		return 0
	}
	if d.maxDelta > 0 && dt > d.maxDelta {
		d.log.Debug().Float64("dt", dt).Float64("max", d.maxDelta).Msg("frame time clamped")
		return d.maxDelta
	}
	return dt
}

// Draw draws the inner game, then the overlay when enabled.
func (d *Driver) Draw(screen *ebiten.Image) {
	d.game.Draw(screen)
	if d.overlay != nil {
		d.overlay.Draw(screen)
	}
}

// Layout returns the inner game's layout.
func (d *Driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	return d.game.Layout(outsideWidth, outsideHeight)
}

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	ShowStats bool
}

// Run opens a window and runs game with tweens ticked every frame. It blocks
// until the game ends.
func Run(tweens *tween.Scheduler, game ebiten.Game, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	d := New(tweens, game)
	d.ShowStats(cfg.ShowStats)
	return ebiten.RunGame(d)
}
