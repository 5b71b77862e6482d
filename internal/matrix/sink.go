package matrix

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/presence-matrix/internal/model"
)

// Encode serialises a frame for a zigzag-wired strip: even rows run left to
// right, odd rows right to left, three bytes per pixel in GRB order.
func Encode(f Frame) []byte {
	out := make([]byte, 0, Width*Height*3)
	for y := 0; y < Height; y++ {
		for i := 0; i < Width; i++ {
			x := i
			if y%2 == 1 {
				x = Width - 1 - i
			}
			c := f[y][x]
			out = append(out, c.G, c.R, c.B)
		}
	}
	return out
}

// DeviceSink writes each encoded frame to a character device or file.
type DeviceSink struct {
	Path string
}

func (s DeviceSink) Write(f Frame) error {
	file, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open matrix device: %w", err)
	}
	if _, err := file.Write(Encode(f)); err != nil {
		file.Close()
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return file.Close()
}

// LogSink prints frames at debug level for running without hardware.
type LogSink struct{}

func (LogSink) Write(f Frame) error {
	log.Debug().Msg("Matrix frame\n" + Render(f))
	return nil
}

// Render draws a frame as text: R, G or B for the dominant channel, '.' for dark.
func Render(f Frame) string {
	var sb strings.Builder
	for y := range f {
		for _, c := range f[y] {
			sb.WriteByte(glyph(c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyph(c model.Color) byte {
	switch {
	case c == model.Black:
		return '.'
	case c.R >= c.G && c.R >= c.B:
		return 'R'
	case c.G >= c.B:
		return 'G'
	default:
		return 'B'
	}
}
