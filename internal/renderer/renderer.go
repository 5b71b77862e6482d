package renderer

import (
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/presence-matrix/internal/icons"
	"github.com/thatsimonsguy/presence-matrix/internal/matrix"
	"github.com/thatsimonsguy/presence-matrix/internal/model"
)

var (
	BusyColor      = model.Red
	AvailableColor = model.Green
)

type Renderer struct {
	display matrix.Display
	icons   icons.Set
}

func New(display matrix.Display, set icons.Set) *Renderer {
	return &Renderer{display: display, icons: set}
}

// Render replaces the frame with the red cross when the user is active and
// the green check otherwise.
func (r *Renderer) Render(p model.Presence) {
	bm, color := r.icons.Check, AvailableColor
	if p.Active() {
		bm, color = r.icons.Cross, BusyColor
	}

	r.display.Clear()
	r.display.DrawBitmap(0, 0, bm, color)
	if err := r.display.Show(); err != nil {
		log.Error().Err(err).Str("presence", string(p)).Msg("Failed to show icon")
		return
	}

	log.Debug().Str("presence", string(p)).Msg("Rendered presence icon")
}
