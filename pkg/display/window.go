// Package display shows a rendered figure in a desktop window.
package display

import (
	"image"
	"log/slog"
	"os"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Window shows images in an ebiten window
type Window struct {
	Log *slog.Logger
}

// NewWindow returns a Window logging to log
func NewWindow(log *slog.Logger) *Window {
	return &Window{Log: log}
}

// Show opens a window sized to img and blocks until it is closed or
// Esc/Q is pressed. Without a display server it logs a warning and
// returns immediately.
func (w *Window) Show(img image.Image, title string) error {
	if !Available() {
		w.logger().Warn("no display available, figure not shown")
		return nil
	}

	b := img.Bounds()
	g := &figureGame{src: img, width: b.Dx(), height: b.Dy()}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(b.Dx(), b.Dy())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)
	return ebiten.RunGame(g)
}

func (w *Window) logger() *slog.Logger {
	if w.Log != nil {
		return w.Log
	}
	return slog.Default()
}

// Available reports whether a window can be opened
func Available() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	}
	return true
}

type figureGame struct {
	src    image.Image
	img    *ebiten.Image
	width  int
	height int
}

func (g *figureGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (g *figureGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImageFromImage(g.src)
	}
	screen.DrawImage(g.img, nil)
}

func (g *figureGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
