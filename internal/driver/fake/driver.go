package fake

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/coreman2200/beatlights/internal/render"
)

// Driver keeps every frame it receives and logs a compact summary of each,
// useful for headless runs and tests.
type Driver struct {
	Log zerolog.Logger

	mu     sync.Mutex
	frames []render.Frame
}

func New(log zerolog.Logger) *Driver {
	return &Driver{Log: log}
}

func (d *Driver) Write(f render.Frame) error {
	d.mu.Lock()
	d.frames = append(d.frames, f)
	count := len(d.frames)
	d.mu.Unlock()

	selected := 0
	for _, l := range f.Lights {
		if l.Selected {
			selected++
		}
	}
	d.Log.Debug().
		Int("frame", count).
		Uint64("seq", f.Seq).
		Int("lights", len(f.Lights)).
		Int("selected", selected).
		Float32("end_beat", f.EndBeat).
		Msg("frame")
	return nil
}

// Frames returns a copy of the frames written so far.
func (d *Driver) Frames() []render.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]render.Frame(nil), d.frames...)
}

func (d *Driver) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.frames)
}
