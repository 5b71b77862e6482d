// Package matrix models the 8x8 RGB pixel matrix. Drawing happens on a
// pending frame; Show publishes it to a Sink, scaled by brightness.
package matrix

import (
	"sync"

	"github.com/thatsimonsguy/presence-matrix/internal/icons"
	"github.com/thatsimonsguy/presence-matrix/internal/model"
)

const (
	Width  = icons.Size
	Height = icons.Size
)

// Frame is indexed [y][x] from the top-left pixel.
type Frame [Height][Width]model.Color

type Display interface {
	Clear()
	DrawBitmap(x, y int, bm icons.Bitmap, c model.Color)
	Show() error
}

type Sink interface {
	Write(frame Frame) error
}

type Buffer struct {
	mu         sync.Mutex
	pending    Frame
	shown      Frame
	brightness uint8
	sink       Sink
}

var _ Display = &Buffer{}

func NewBuffer(brightness uint8, sink Sink) *Buffer {
	return &Buffer{brightness: brightness, sink: sink}
}

func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = Frame{}
}

// DrawBitmap paints the lit pixels of bm with its top-left corner at (x, y).
// Pixels falling outside the matrix are dropped.
func (b *Buffer) DrawBitmap(x, y int, bm icons.Bitmap, c model.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for dy := 0; dy < icons.Size; dy++ {
		for dx := 0; dx < icons.Size; dx++ {
			if !bm.Lit(dx, dy) {
				continue
			}
			px, py := x+dx, y+dy
			if px < 0 || px >= Width || py < 0 || py >= Height {
				continue
			}
			b.pending[py][px] = c
		}
	}
}

func (b *Buffer) Show() error {
	b.mu.Lock()
	b.shown = b.pending
	out := Scale(b.shown, b.brightness)
	sink := b.sink
	b.mu.Unlock()

	if sink == nil {
		return nil
	}
	return sink.Write(out)
}

// Blank clears the matrix and shows the empty frame.
func (b *Buffer) Blank() error {
	b.Clear()
	return b.Show()
}

// Shown returns the last published frame at full brightness.
func (b *Buffer) Shown() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shown
}

// Scale applies brightness the way NeoPixel drivers do: 255 is unchanged, 0 is dark.
func Scale(f Frame, brightness uint8) Frame {
	var out Frame
	for y := range f {
		for x, c := range f[y] {
			out[y][x] = model.Color{
				R: scale(c.R, brightness),
				G: scale(c.G, brightness),
				B: scale(c.B, brightness),
			}
		}
	}
	return out
}

func scale(v, brightness uint8) uint8 {
	return uint8((uint16(v) * (uint16(brightness) + 1)) >> 8)
}
