package shutdown

import (
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// ExitFunc is replaced in tests.
var ExitFunc = os.Exit

type Blanker interface {
	Blank() error
}

type Switch interface {
	Off() error
}

// Shutdown blanks the display, switches the status LED off and exits.
// closers run after the last log line, in order.
func Shutdown(display Blanker, led Switch, closers ...io.Closer) {
	if err := display.Blank(); err != nil {
		log.Warn().Err(err).Msg("Failed to blank matrix during shutdown")
	}
	if err := led.Off(); err != nil {
		log.Warn().Err(err).Msg("Failed to switch off status LED during shutdown")
	}
	log.Info().Msg("Display blanked, status LED off")
	closeAll(closers)
	ExitFunc(0)
}

func ShutdownWithError(err error, msg string, display Blanker, led Switch, closers ...io.Closer) {
	log.Error().Err(err).Msg(msg)
	if blankErr := display.Blank(); blankErr != nil {
		log.Warn().Err(blankErr).Msg("Failed to blank matrix during shutdown")
	}
	if offErr := led.Off(); offErr != nil {
		log.Warn().Err(offErr).Msg("Failed to switch off status LED during shutdown")
	}
	closeAll(closers)
	ExitFunc(1)
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}
