package browser

import (
	"io"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"

	"github.com/regalium/regalium-core/internal/logging"
)

// Opener opens a URL in a new browser context.
type Opener interface {
	OpenURL(url string) error
}

// System opens URLs with the platform's default browser.
type System struct {
	log zerolog.Logger
}

// NewSystem returns a System opener. The launched browser's own output is
// discarded so it does not interleave with CLI output.
func NewSystem() *System {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &System{log: logging.Component("browser")}
}

func (s *System) OpenURL(url string) error {
	s.log.Debug().Str("url", url).Msg("opening browser")
	return browser.OpenURL(url)
}

// Recorder collects URLs instead of opening them. It is used by --print-only
// modes and tests.
type Recorder struct {
	URLs []string
}

func (r *Recorder) OpenURL(url string) error {
	r.URLs = append(r.URLs, url)
	return nil
}
